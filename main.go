package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"imgview/app"
	"imgview/config"
	"imgview/imageset"
	"imgview/log"
	"imgview/session"
	"imgview/sorting"
)

var (
	version     = "0.1.0"
	sortFlag    string
	maxFlag     int
	destFlag    string
	noColorFlag bool

	rootCmd = &cobra.Command{
		Use:   "imgview [path or glob...]",
		Short: "imgview - browse and sort out images from the terminal",
		Long: "imgview lists the images matched by the given paths or globs (the current directory by default).\n" +
			"Press : or / to type a command, ? for help.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log.Initialize(cfg.LogConfig())
			defer log.Close()

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("imgview must be run in a terminal")
			}
			if noColorFlag || os.Getenv("NO_COLOR") != "" {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			opts, err := sessionOptions(cmd, cfg, args)
			if err != nil {
				return err
			}
			log.InfoLog.Printf("starting with %d images below %s", len(opts.Images), opts.BaseDir)
			return app.Run(cmd.Context(), session.New(opts))
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configPath, err := config.ConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
			logPath, err := log.GetLogFilePath(cfg.LogConfig())
			if err != nil {
				return fmt.Errorf("failed to get log path: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", configPath)
			fmt.Fprintf(out, "Logs: %s\n\n", logPath)
			return cfg.Encode(out)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of imgview",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imgview version %s\n", version)
		},
	}
)

// sessionOptions resolves the command line paths and merges the flags over the config file.
func sessionOptions(cmd *cobra.Command, cfg *config.Config, args []string) (session.Options, error) {
	order, err := cfg.SortOrder()
	if err != nil {
		return session.Options{}, err
	}
	if cmd.Flags().Changed("sort") {
		if order, err = sorting.ParseOrder(sortFlag); err != nil {
			return session.Options{}, err
		}
	}

	maxImages := cfg.MaxImages
	if cmd.Flags().Changed("max") {
		if maxFlag < 0 {
			return session.Options{}, fmt.Errorf("--max must not be negative, got %d", maxFlag)
		}
		maxImages = maxFlag
	}

	dest := cfg.DestFolder
	if cmd.Flags().Changed("dest") {
		dest = destFlag
	}
	if dest != "" {
		if dest, err = imageset.ExpandArgument(dest); err != nil {
			return session.Options{}, err
		}
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	images, err := imageset.NewGlobber(nil).ResolveAll(args)
	if err != nil {
		return session.Options{}, err
	}

	baseDir, ok := imageset.ResolveBaseDir(args[0])
	if !ok || len(args) > 1 {
		if baseDir, err = os.Getwd(); err != nil {
			return session.Options{}, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	return session.Options{
		Images:      images,
		BaseDir:     baseDir,
		MaxImages:   maxImages,
		DestFolder:  dest,
		KeepDirName: cfg.KeepDirName,
		Sorter:      sorting.NewSorter(order),
	}, nil
}

func init() {
	rootCmd.Flags().StringVarP(&sortFlag, "sort", "s", "",
		"Initial sort order: alphabetical, date or size, optionally suffixed with -desc")
	rootCmd.Flags().IntVarP(&maxFlag, "max", "m", 0,
		"Maximum number of images to show, 0 for all")
	rootCmd.Flags().StringVarP(&destFlag, "dest", "d", "",
		"Folder kept images are copied to, instead of <base dir>/keep")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colors")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
