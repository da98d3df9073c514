package system

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
)

func confirm(ctx *cli.Context, warning string) bool {
	out := ctx.Stdout()
	fmt.Fprintf(out, "⚠️  WARNING: %s\n", warning)
	fmt.Fprint(out, "Continue? [y/N]: ")

	response, _ := bufio.NewReader(ctx.Stdin()).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
