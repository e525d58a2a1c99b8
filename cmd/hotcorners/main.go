package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

const appName = "hotcorners"

// daemonChildEnv marks the re-executed child so it runs the monitor
// instead of forking again.
const daemonChildEnv = "HOTCORNERS_DAEMON_CHILD"

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.HelpName = appName
	app.Usage = "launch applications by moving the cursor into a screen corner"
	app.Version = version
	app.Commands = []cli.Command{
		{
			Name:   "start",
			Usage:  "start the corner monitor",
			Action: startCommand,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "foreground, f",
					Usage: "run in the foreground instead of daemonizing",
				},
			},
		},
		{
			Name:   "serve",
			Usage:  "start the corner monitor with the web dashboard",
			Action: serveCommand,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "foreground, f",
					Usage: "run in the foreground instead of daemonizing",
				},
				cli.IntFlag{
					Name:  "port, p",
					Usage: "override the dashboard port",
				},
			},
		},
		{
			Name:   "stop",
			Usage:  "stop the running monitor",
			Action: stopCommand,
		},
		{
			Name:   "status",
			Usage:  "show monitor status and corner bindings",
			Action: statusCommand,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "json",
					Usage: "print status as JSON",
				},
			},
		},
		{
			Name:   "corners",
			Usage:  "list the corner bindings",
			Action: cornersCommand,
		},
		{
			Name:      "bind",
			Usage:     "bind an application to a corner",
			ArgsUsage: "<corner> <application path or name>",
			Action:    bindCommand,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name",
					Usage: "display name for the binding",
				},
			},
		},
		{
			Name:      "unbind",
			Usage:     "remove the binding of a corner",
			ArgsUsage: "<corner>",
			Action:    unbindCommand,
		},
		{
			Name:   "apps",
			Usage:  "list installed applications",
			Action: appsCommand,
		},
		{
			Name:   "watch",
			Usage:  "print corner hits live without launching anything",
			Action: watchCommand,
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "duration, d",
					Usage: "how long to watch",
					Value: 30 * time.Second,
				},
			},
		},
		{
			Name:      "report",
			Usage:     "summarize triggers for a period",
			ArgsUsage: "[day|week|month]",
			Action:    reportCommand,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the report as JSON",
				},
			},
		},
		{
			Name:   "history",
			Usage:  "show recent corner triggers",
			Action: historyCommand,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "limit, n",
					Usage: "number of triggers to show",
					Value: 20,
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "print triggers as JSON",
				},
			},
		},
		{
			Name:      "export",
			Usage:     "write the corner bindings as YAML",
			ArgsUsage: "[file]",
			Action:    exportCommand,
		},
		{
			Name:      "import",
			Usage:     "load corner bindings from a YAML file",
			ArgsUsage: "<file>",
			Action:    importCommand,
		},
		{
			Name:   "clear",
			Usage:  "delete the trigger history",
			Action: clearCommand,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yes, y",
					Usage: "skip the confirmation prompt",
				},
				cli.IntFlag{
					Name:  "days",
					Usage: "only delete triggers older than this many days",
				},
			},
		},
		{
			Name:  "version",
			Usage: "show version information",
			Action: func(ctx *cli.Context) error {
				fmt.Printf("%s version %s\n", appName, version)
				fmt.Printf("  commit: %s\n", commit)
				fmt.Printf("  built:  %s\n", date)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
