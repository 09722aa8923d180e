// Command robovacvis replays a recorded run on its house in a Gio window.
package main

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac/internal/sim"
	"github.com/elektrokombinacija/robovac/internal/vis"
	"github.com/elektrokombinacija/robovac/internal/vis/state"
)

var rootCmd = &cobra.Command{
	Use:   "robovacvis <house-file> <output-file>",
	Short: "Replay a robovac output file on its house",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := load(args[0], args[1])
		if err != nil {
			return err
		}

		go func() {
			window := new(app.Window)
			window.Option(
				app.Title(fmt.Sprintf("Robovac: %s (%s)", st.House.Name, st.Output.Status)),
				app.Size(unit.Dp(1200), unit.Dp(800)),
			)
			if err := vis.NewApp(st).Run(window); err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	},
}

func load(housePath, outputPath string) (*state.State, error) {
	house, err := sim.LoadHouse(housePath)
	if err != nil {
		return nil, err
	}
	out, err := sim.ReadOutput(outputPath)
	if err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}
	return state.NewState(house, out)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
