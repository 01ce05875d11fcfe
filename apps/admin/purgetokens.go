package main

import (
	"context"
	"fmt"
	"time"
)

// purgeTokens drops deny-list entries that can no longer gate a live token.
func (cli *commandLine) purgeTokens() error {
	n, err := cli.revokedRepo.PurgeExpiredTokens(context.Background(), time.Now().UTC())
	if err != nil {
		return err
	}
	fmt.Printf("purged %d expired token(s)\n", n)
	return nil
}
