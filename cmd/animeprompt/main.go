package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/fang"

	"github.com/doeshing/animeprompt/internal/infrastructure/cli"
	"github.com/doeshing/animeprompt/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})
	if err := fang.Execute(ctx, root,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.Commit),
		fang.WithErrorHandler(printError),
	); err != nil {
		os.Exit(1)
	}
}

func printError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, "error:", err)
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("ANIMEPROMPT_DEBUG"), "1") || strings.EqualFold(os.Getenv("ANIMEPROMPT_DEBUG"), "true")
}
