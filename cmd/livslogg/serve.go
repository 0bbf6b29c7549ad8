package main

import (
	"fmt"
	"net/http"

	"github.com/livslogg/livslogg/logbook"
	"github.com/livslogg/livslogg/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web dashboard",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8487", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	book := newLogbook(cfg, logbook.NewConsoleLogger(cmd.ErrOrStderr()), false)
	handler := web.NewHandler(web.Options{
		Logbook:    book,
		Activities: openActivityStore(cfg),
		Tasks:      openTaskStore(cfg),
	})

	fmt.Printf("Serving livslogg on http://%s\n", serveAddr)
	return http.ListenAndServe(serveAddr, handler)
}
