package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grpc-protos/protosync/internal/cli"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := perrors.GetUserMessage(err); hint != "" {
			_, _ = fmt.Fprintln(os.Stderr, hint)
		}
	}
	os.Exit(perrors.ExitCode(err))
}
