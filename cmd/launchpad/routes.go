package main

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

type route struct {
	method  string
	pattern string
}

func routesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table without serving",
		Long: `Run every startup step, print the resulting routes and release the
prepared resources. Nothing is bound to the serve address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			sp, err := newPipeline(cfg, newRegistry())
			if err != nil {
				return err
			}
			ready, err := sp.PrepareStart(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := ready.Close(); err == nil {
					err = closeErr
				}
			}()

			routes, err := walk(ready.Router())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATTERN")
			for _, r := range routes {
				fmt.Fprintf(w, "%s\t%s\n", r.method, r.pattern)
			}
			return w.Flush()
		},
	}
}

// walk lists every route of r sorted by pattern, then method.
func walk(r chi.Routes) ([]route, error) {
	var routes []route
	err := chi.Walk(r, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, route{method: method, pattern: pattern})
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(routes, func(a, b route) int {
		if c := strings.Compare(a.pattern, b.pattern); c != 0 {
			return c
		}
		return strings.Compare(a.method, b.method)
	})
	return routes, nil
}
