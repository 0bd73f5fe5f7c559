package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/synthesis"
	"gifcrop/internal/types"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clipDefaults = types.ClipDefaults{StartTime: 0, Duration: 5, Fps: 15}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cropctl",
		Short: "Synthesize GIF crop configs without the editor",
		Long: `cropctl prints the GIF configs the editor would derive for a frame size.

Examples:
  # 3x2 grid over a 1080p frame
  cropctl grid --width 1920 --height 1080 --rows 3 --columns 2

  # one horizontal and two vertical lines in pixels
  cropctl lines --width 1920 --height 1080 --unit pixels --h 540 --v 640,1280`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "Tile the frame into a rows x columns grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := frameFlags(cmd)
			if err != nil {
				return err
			}
			rows, _ := cmd.Flags().GetInt("rows")
			columns, _ := cmd.Flags().GetInt("columns")

			params := types.DefaultMethodParams(types.MethodGrid)
			params.Grid = types.GridParams{Rows: rows, Columns: columns}
			return synthesizeTo(cmd.OutOrStdout(), frame, params)
		},
	}

	linesCmd := &cobra.Command{
		Use:   "lines",
		Short: "Cut the frame into bands along full-span lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := frameFlags(cmd)
			if err != nil {
				return err
			}
			rawUnit, _ := cmd.Flags().GetString("unit")
			unit, err := region.ParseUnit(rawUnit)
			if err != nil {
				return err
			}
			horizontal, _ := cmd.Flags().GetFloat64Slice("h")
			vertical, _ := cmd.Flags().GetFloat64Slice("v")

			toLines := func(positions []float64, axis region.Axis) []region.SplitLine {
				return lo.Map(positions, func(p float64, _ int) region.SplitLine {
					return region.FullSpan(axis, p, unit, frame)
				})
			}
			params := types.DefaultMethodParams(types.MethodLines)
			params.Lines = types.LineParams{
				Horizontal: toLines(horizontal, region.Horizontal),
				Vertical:   toLines(vertical, region.Vertical),
				Unit:       unit,
			}
			return synthesizeTo(cmd.OutOrStdout(), frame, params)
		},
	}

	for _, cmd := range []*cobra.Command{gridCmd, linesCmd} {
		cmd.Flags().Int("width", 0, "Native video width in pixels")
		cmd.Flags().Int("height", 0, "Native video height in pixels")
		cmd.MarkFlagRequired("width")
		cmd.MarkFlagRequired("height")
	}
	gridCmd.Flags().IntP("rows", "r", 2, "Grid rows (at least 1)")
	gridCmd.Flags().IntP("columns", "c", 2, "Grid columns (at least 1)")
	linesCmd.Flags().StringP("unit", "u", string(region.Pixels), "Line unit (pixels or percent)")
	linesCmd.Flags().Float64Slice("h", nil, "Horizontal line positions")
	linesCmd.Flags().Float64Slice("v", nil, "Vertical line positions")

	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(linesCmd)
	return rootCmd
}

func frameFlags(cmd *cobra.Command) (geometry.VideoFrame, error) {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	frame := geometry.VideoFrame{Width: width, Height: height}
	if !frame.Known() {
		return frame, fmt.Errorf("width and height must be positive")
	}
	return frame, nil
}

func synthesizeTo(out io.Writer, frame geometry.VideoFrame, params types.MethodParams) error {
	configs, err := synthesis.NewEngine(clipDefaults).Synthesize(frame, params, nil)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(configs)
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
