package main

import (
	"fmt"
	"strings"

	"github.com/poiesic/seekr/query"
	"github.com/urfave/cli/v2"
)

func queryCmd() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Normalize a query and print its language and token",
		ArgsUsage: "QUERY",
		Action:    queryCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Language used when the query has no directive",
				Value: "en",
			},
		},
	}
}

func queryCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query is required")
	}
	qc := query.NewContext(strings.Join(c.Args().Slice(), " "), c.String("lang"))

	out := c.App.Writer
	fmt.Fprintf(out, "query: %s\n", qc.Query)
	fmt.Fprintf(out, "lang:  %s\n", qc.Lang)
	fmt.Fprintf(out, "token: %s\n", qc.Token())
	return nil
}
