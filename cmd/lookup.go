package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/api"
	"github.com/sells-group/linkedin-lookup/internal/model"
)

var (
	lookupEmail   string
	lookupName    string
	lookupCountry string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve a single email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initLookup(cfg)
		if err != nil {
			return err
		}

		q := model.Query{Email: lookupEmail, Name: lookupName, Country: lookupCountry}
		res, err := env.Resolver.Lookup(ctx, q)
		if err != nil {
			return eris.Wrap(err, "lookup")
		}

		zap.L().Info("lookup complete",
			zap.String("searched_name", res.SearchedName),
			zap.Int("matched", len(res.MatchedProfiles)),
			zap.Int("employees", len(res.CompanyEmployees)),
		)

		return printJSON(os.Stdout, api.NewLookupResponse(res))
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupEmail, "email", "", "email address to resolve (required)")
	lookupCmd.Flags().StringVar(&lookupName, "name", "", "full name, if known")
	lookupCmd.Flags().StringVar(&lookupCountry, "country", "", "country or location, if known")
	_ = lookupCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(lookupCmd)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
