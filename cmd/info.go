package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/nvr-ai/go-raster/images"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// imageInfo is the info command's report.
type imageInfo struct {
	Path      string                `json:"path" yaml:"path"`
	Width     int                   `json:"width" yaml:"width"`
	Height    int                   `json:"height" yaml:"height"`
	ColorType images.ColorType      `json:"colorType" yaml:"colorType"`
	Channels  int                   `json:"channels" yaml:"channels"`
	Stats     []images.ChannelStats `json:"stats" yaml:"stats"`
	Checksum  string                `json:"checksum" yaml:"checksum"`
}

func newInfoCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "info [input]",
		Short: "Get the information of an image",
		Long:  "Get the information of an image, like its size, color type, per-channel statistics and checksum.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}

			stats, err := img.Stats()
			if err != nil {
				return classify(err)
			}

			info := imageInfo{
				Path:      args[0],
				Width:     img.Width,
				Height:    img.Height,
				ColorType: img.ColorType,
				Channels:  img.ColorType.Channels(),
				Stats:     stats,
				Checksum:  images.Checksum(img),
			}

			switch format {
			case "json":
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return classify(err)
				}
				cmd.Println(string(out))
			case "yaml":
				out, err := yaml.Marshal(info)
				if err != nil {
					return classify(err)
				}
				cmd.Print(string(out))
			case "text":
				cmd.Printf("Size: %dx%d\n", info.Width, info.Height)
				cmd.Printf("Color type: %s (%d channels)\n", info.ColorType, info.Channels)
				cmd.Printf("Channels:\n")
				for i, s := range stats {
					cmd.Printf(" - %d: min %d, max %d, mean %.2f, stddev %.2f\n", i, s.Min, s.Max, s.Mean, s.StdDev)
				}
				cmd.Printf("Checksum: %s\n", info.Checksum)
			default:
				return newExitCodeError(fmt.Errorf("unknown output format %q, expected text, json or yaml", format), ExitCodeInvalidArguments)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}
