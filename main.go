// Command tp-assess determines Related Party / Connected Person status
// under UAE Transfer Pricing rules by submitting structured party facts
// to a completion service and validating its structured answer.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tp-assess/internal/assess"
	"tp-assess/internal/config"
	"tp-assess/internal/gateway"
	"tp-assess/internal/party"
	"tp-assess/internal/schema"
)

type partyFlags struct {
	kind        string
	name        string
	residency   string
	companyType string
	listed      bool
	regulated   bool
}

func (f *partyFlags) register(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringVar(&f.kind, prefix+"-type", "Individual", "party type: Individual or Company")
	cmd.Flags().StringVar(&f.name, prefix+"-name", "", "party name (required)")
	cmd.Flags().StringVar(&f.residency, prefix+"-residency", party.ResidencyUAE, "residency status (individuals)")
	cmd.Flags().StringVar(&f.companyType, prefix+"-company-type", "LLC", "company type (companies)")
	cmd.Flags().BoolVar(&f.listed, prefix+"-listed", false, "listed on a recognized stock exchange (companies)")
	cmd.Flags().BoolVar(&f.regulated, prefix+"-regulated", false, "under UAE regulatory oversight (companies)")
}

func (f *partyFlags) profile() (*party.Profile, error) {
	switch {
	case strings.EqualFold(f.kind, string(party.Individual)):
		return party.NewIndividual(f.name, f.residency)
	case strings.EqualFold(f.kind, string(party.Company)):
		return party.NewCompany(f.name, f.companyType, f.listed, f.regulated)
	default:
		return nil, &party.ValidationError{Field: "type", Reason: "must be Individual or Company"}
	}
}

func main() {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	root := &cobra.Command{
		Use:           "tp-assess",
		Short:         "UAE Transfer Pricing related-party assessment tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAssessCmd(cfg), newSchemaCmd())
	if cfg.Debug {
		root.AddCommand(newSelftestCmd(cfg))
	}

	if err := root.Execute(); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func newAssessCmd(cfg config.Config) *cobra.Command {
	var (
		p1Flags, p2Flags partyFlags
		ownershipPct     float64
		votingPct        float64
		boardControl     bool
		family           string
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Analyze whether two parties are Related Parties or Connected Persons",
		RunE: func(cmd *cobra.Command, args []string) error {
			p1, err := p1Flags.profile()
			if err != nil {
				return fmt.Errorf("party 1: %w", err)
			}
			p2, err := p2Flags.profile()
			if err != nil {
				return fmt.Errorf("party 2: %w", err)
			}

			rel, err := relationshipFor(p1, p2, ownershipPct, votingPct, boardControl, family)
			if err != nil {
				return err
			}

			completer, closeFn, err := newCompleter(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			outcome, failure := assess.New(completer).Assess(cmd.Context(), p1, p2, rel)
			if failure != nil {
				return fmt.Errorf("%s", failure)
			}
			printOutcome(cmd, outcome)
			return nil
		},
	}

	p1Flags.register(cmd, "party1")
	p2Flags.register(cmd, "party2")
	cmd.Flags().Float64Var(&ownershipPct, "ownership", 0, "ownership percentage (company/company)")
	cmd.Flags().Float64Var(&votingPct, "voting", 0, "voting rights percentage (company/company)")
	cmd.Flags().BoolVar(&boardControl, "board-control", false, "board control (company/company)")
	cmd.Flags().StringVar(&family, "family", "None", "family relationship (individual/individual)")
	return cmd
}

// relationshipFor mirrors the intake rules: ownership facts for a
// company/company pair, family facts for an individual/individual
// pair, nothing for a mixed pair.
func relationshipFor(p1, p2 *party.Profile, ownershipPct, votingPct float64, boardControl bool, family string) (*party.Relationship, error) {
	switch {
	case p1.Kind == party.Company && p2.Kind == party.Company:
		return party.NewOwnership(ownershipPct, votingPct, boardControl)
	case p1.Kind == party.Individual && p2.Kind == party.Individual:
		return party.NewFamily(family)
	default:
		return nil, nil
	}
}

func printOutcome(cmd *cobra.Command, outcome *assess.Outcome) {
	r := outcome.Result
	cmd.Printf("Assessment ID: %s\n\n", outcome.ID)
	cmd.Printf("Assessment:\n%s\n\n", r.Assessment)
	cmd.Printf("Relationship Type: %s\n", r.RelationshipType)
	cmd.Printf("Basis: %s\n", r.Basis)
	cmd.Printf("Risk Level: %s\n", r.RiskLevel)
	if warning := outcome.RiskLevelWarning(); warning != "" {
		cmd.Printf("Warning: %s\n", warning)
	}
	cmd.Printf("\nRequired Documentation:\n%s\n", r.Documentation)
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the output format instructions sent to the model",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(schema.Default().FormatInstructions())
		},
	}
}

type selftester interface {
	Selftest(ctx context.Context) error
}

func newSelftestCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Send a minimal completion to verify connectivity and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, closeFn, err := newCompleter(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			probe, ok := completer.(selftester)
			if !ok {
				return fmt.Errorf("provider %s does not support selftest", cfg.Provider)
			}
			if err := probe.Selftest(cmd.Context()); err != nil {
				return fmt.Errorf("API connection failed: %w", err)
			}
			cmd.Println("API connection successful")
			return nil
		},
	}
}

func newCompleter(ctx context.Context, cfg config.Config) (gateway.Completer, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := gateway.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	case config.ProviderPerplexity:
		p, err := gateway.NewPerplexity(gateway.PerplexityOptions{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return p, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
