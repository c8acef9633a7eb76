package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"go.minekube.com/bot/pkg/edition/java/query"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run a full stat query against a server's UDP query port",
		ArgsUsage: "<address>",
		Description: `The server must have enable-query=true in its server.properties.
The port defaults to 25565.

	bot query play.example.com:25565`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout of the query",
				Value: query.DefaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "Print the response as YAML",
			},
		},
		Action: func(c *cli.Context) error {
			if !c.Args().Present() {
				return cli.Exit("missing server address", 1)
			}
			addr := c.Args().First()

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()
			res, err := query.Query(ctx, addr)
			if err != nil {
				return cli.Exit(fmt.Errorf("error querying %s: %w", addr, err), 1)
			}

			if c.Bool("yaml") {
				enc := yaml.NewEncoder(c.App.Writer)
				enc.SetIndent(2)
				if err = enc.Encode(res); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			}

			b := new(strings.Builder)
			line := func(key string, value any) {
				_, _ = fmt.Fprintf(b, "%s %v\n", color.Cyan.Sprintf("%-10s", key+":"), value)
			}
			line("MOTD", res.MOTD)
			line("Version", res.Version)
			line("Game", fmt.Sprintf("%s (%s)", res.GameID, res.GameType))
			line("Map", res.Map)
			line("Players", fmt.Sprintf("%d/%d %s", res.Online, res.Max, strings.Join(res.Players, ", ")))
			line("Host", fmt.Sprintf("%s:%d", res.HostIP, res.HostPort))
			if res.Plugins != "" {
				line("Plugins", res.Plugins)
			}
			_, err = fmt.Fprint(c.App.Writer, b.String())
			return err
		},
	}
}
