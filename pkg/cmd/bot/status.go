package bot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gookit/color"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"go.minekube.com/bot/pkg/edition/java/ping"
	"go.minekube.com/bot/pkg/util/netutil"
)

func statusCommand(configFile *string) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Ping a server and show its status",
		ArgsUsage: "[address]",
		Description: `Runs the status ping against the address,
or against the configured server if none is given.

	bot status play.example.com
	bot status --yaml localhost:25566`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "Print the status as YAML",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw status JSON sent by the server",
			},
			&cli.UintFlag{
				Name:  "favicon-width",
				Usage: "Width of the favicon preview in characters, 0 disables it",
				Value: 32,
			},
		},
		Action: func(c *cli.Context) error {
			log := logr.FromContextOrDiscard(c.Context)
			_, cfg, err := loadConfig(log.V(1), *configFile)
			if err != nil {
				return cli.Exit(err, 1)
			}
			addr := cfg.Java.Addr
			if c.Args().Present() {
				addr = c.Args().First()
			}

			pinger := ping.NewPinger(ping.PingerOptions{
				Dialer: &netutil.Dialer{
					Timeout:       cfg.Java.ConnectTimeout,
					SOCKS5:        cfg.Java.SOCKS5,
					ProxyProtocol: cfg.Java.ProxyProtocol,
				},
				Timeout: cfg.Java.Ping.Timeout,
				TTL:     cfg.Java.Ping.CacheTTL,
				Logger:  log,
			})
			defer pinger.Close()

			res, err := pinger.Ping(c.Context, addr)
			if err != nil {
				return cli.Exit(fmt.Errorf("error pinging %s: %w", addr, err), 1)
			}

			out := c.App.Writer
			switch {
			case c.Bool("json"):
				_, err = fmt.Fprintln(out, res.Raw)
			case c.Bool("yaml"):
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				err = enc.Encode(res.Status)
			default:
				err = printStatus(out, addr, res, c.Uint("favicon-width"))
			}
			if err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}

func printStatus(w io.Writer, addr string, res *ping.Result, faviconWidth uint) error {
	s := res.Status
	if faviconWidth != 0 && s.Favicon != "" {
		preview, err := s.Favicon.Preview(faviconWidth)
		if err == nil {
			_, _ = fmt.Fprint(w, preview)
		}
	}

	b := new(strings.Builder)
	line := func(key string, value any) {
		_, _ = fmt.Fprintf(b, "%s %v\n", color.Cyan.Sprintf("%-12s", key+":"), value)
	}
	line("Server", color.Bold.Sprint(addr))
	line("Version", fmt.Sprintf("%s (protocol %d)", s.Version.Name, s.Version.Protocol))
	line("Latency", res.Latency.Round(time.Millisecond).String())
	if s.Players != nil {
		line("Players", fmt.Sprintf("%d/%d", s.Players.Online, s.Players.Max))
		if len(s.Players.Sample) != 0 {
			names := make([]string, 0, len(s.Players.Sample))
			for _, p := range s.Players.Sample {
				names = append(names, p.Name)
			}
			line("Sample", strings.Join(names, ", "))
		}
	}
	if s.ModInfo != nil && s.ModInfo.Forge() {
		mods, _ := json.Marshal(s.ModInfo.Mods)
		line("Forge mods", string(mods))
	}
	line("MOTD", strings.ReplaceAll(s.PlainDescription(), "\n", "\n"+strings.Repeat(" ", 13)))
	_, err := io.WriteString(w, b.String())
	return err
}
