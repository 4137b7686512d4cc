// internal/controllers/seed_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"
)

func (c *Console) Seed(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	res, err := c.seeder.SeedSampleData(ctx)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Sample data: %d rooms and %d members added\n", res.RoomsCreated, res.MembersCreated)
		return err
	})
}
