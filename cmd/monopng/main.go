package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/monopng"
	"github.com/bodgit/monopng/mono"
	"github.com/urfave/cli/v2"
)

const defaultDB = "monopng.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func encoderOptions(c *cli.Context, logger *log.Logger) ([]mono.Option, error) {
	filter, err := mono.ParseFilter(c.String("filter"))
	if err != nil {
		return nil, err
	}

	opts := []mono.Option{
		mono.WithCompressionLevel(c.Int("level")),
		mono.WithFilter(filter),
		mono.WithBitDepth(c.Int("depth")),
		mono.WithDither(c.Bool("dither")),
		mono.WithLogger(logger),
	}
	if c.Bool("grayscale") {
		opts = append(opts, mono.WithColorType(mono.ColorTypeGrayscale))
	}
	return opts, nil
}

func decodeFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func main() {
	app := cli.NewApp()

	app.Name = "monopng"
	app.Usage = "Minimal 1-bit PNG encoder for small monochrome displays"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	encoderFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    "level",
			Aliases: []string{"l"},
			EnvVars: []string{"MONOPNG_LEVEL"},
			Value:   mono.DefaultCompressionLevel,
			Usage:   "compression level, 0-9",
		},
		&cli.StringFlag{
			Name:  "filter",
			Value: mono.FilterNone.String(),
			Usage: "scanline filter, one of none, sub or up",
		},
		&cli.IntFlag{
			Name:  "depth",
			Value: 1,
			Usage: "bits per pixel, one of 1, 2, 4 or 8",
		},
		&cli.BoolFlag{
			Name:  "dither",
			Usage: "reduce colors before encoding",
		},
		&cli.BoolFlag{
			Name:  "grayscale",
			Usage: "write a grayscale header without a palette (1-bit only)",
		},
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MONOPNG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to screen cache",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode a single image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to FILE with a .1bpp.png extension",
				},
			}, encoderFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				opts, err := encoderOptions(c, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				file := c.Args().First()
				m, err := decodeFile(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				e := mono.NewEncoder(opts...)
				e.SetImage(m)
				if _, err := e.Encode(); err != nil {
					return cli.NewExitError(err, 1)
				}

				output := c.String("output")
				if output == "" {
					output = strings.TrimSuffix(file, filepath.Ext(file)) + ".1bpp.png"
				}

				if err := e.SaveFile(output); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Encode every image in a directory tree",
			Description: "",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags:       encoderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				opts, err := encoderOptions(c, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := monopng.New(c.String("db"), logger, opts...)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Convert(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "inspect",
			Usage:       "List the chunks of a PNG file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				chunks, err := mono.ReadChunks(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, chunk := range chunks {
					fmt.Printf("%s %6d %08X\n", chunk.Type, len(chunk.Data), chunk.CRC)
				}

				r, err := mono.Unpack(chunks)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%dx%d, %d bit, color type %d, %d palette entries\n", r.Width, r.Height, r.BitDepth, r.ColorType, len(r.Palette))

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
