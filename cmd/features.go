package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnobs/internal/iofeature"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/geodesy"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/spf13/cobra"
)

// featureOutput is the printed form of a stored feature, the geometry is
// given as WKT.
type featureOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	SampledFeature string `json:"sampledFeature,omitempty"`
	Geometry       string `json:"geometry,omitempty"`
}

type listOutput struct {
	Table    string          `json:"table"`
	Kind     string          `json:"kind"`
	CRS      string          `json:"crs,omitempty"`
	Features []featureOutput `json:"features"`
}

// getFeaturesCmd returns the features command with its subcommands.
func getFeaturesCmd() *cobra.Command {
	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "List or remove stored features",
		Long: `Work with features stored by 'gnobs ingest'.

Kinds of features:
  sampling  sampling points of observations
  sensor    sensor locations

Examples:
  gnobs features list -k sensor
  gnobs features list -k sampling sampling-point-1 sampling-point-2
  gnobs features remove -k sensor sensor-location-3`,
	}

	featuresCmd.AddCommand(getFeaturesListCmd(), getFeaturesRemoveCmd())
	return featuresCmd
}

func getFeaturesListCmd() *cobra.Command {
	var (
		kind   string
		pretty bool
	)
	listCmd := &cobra.Command{
		Use:   "list [flags] [id...]",
		Short: "Print stored features as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFeaturesList(kind, args, pretty)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	listCmd.Flags().StringVarP(&kind, "kind", "k", "sampling",
		"kind of features: sampling or sensor")
	listCmd.Flags().BoolVarP(&pretty, "pretty", "p", false,
		"print indented JSON")
	return listCmd
}

func getFeaturesRemoveCmd() *cobra.Command {
	var kind string
	removeCmd := &cobra.Command{
		Use:   "remove [flags] id...",
		Short: "Remove stored features",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFeaturesRemove(kind, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	removeCmd.Flags().StringVarP(&kind, "kind", "k", "sampling",
		"kind of features: sampling or sensor")
	return removeCmd
}

func openStore(ctx context.Context) (feature.Store, error) {
	op, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	res, err := iofeature.New(op, cfg, geodesy.New())
	if err != nil {
		op.Close()
		return nil, err
	}
	return res, nil
}

func parseKind(s string) (feature.Kind, error) {
	k := feature.NewKind(s)
	if k == feature.UnknownKind {
		return k, InvalidFlagError("kind", s, []string{"sampling", "sensor"})
	}
	return k, nil
}

func runFeaturesList(kind string, ids []string, pretty bool) error {
	ctx := context.Background()
	k, err := parseKind(kind)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Reader(ctx, feature.Query{Kind: k, IDs: ids})
	if err != nil {
		return err
	}
	defer r.Close()

	res := listOutput{Kind: k.String(), Features: []featureOutput{}}
	for {
		ok, err := r.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		f, err := r.Next()
		if err != nil {
			return err
		}
		out := featureOutput{
			ID:             f.ID,
			Name:           f.Name,
			Description:    f.Description,
			SampledFeature: f.SampledFeature,
		}
		if f.Geometry != nil {
			out.Geometry = wkt.MarshalString(f.Geometry)
		}
		res.Features = append(res.Features, out)
	}

	ft := r.FeatureType()
	res.Table = ft.Name
	if !ft.CRS.IsZero() {
		res.CRS = ft.CRS.String()
	}

	bs, err := gnfmt.GNjson{Pretty: pretty}.Encode(res)
	if err != nil {
		return err
	}
	fmt.Println(string(bs))
	return nil
}

func runFeaturesRemove(kind string, ids []string) error {
	ctx := context.Background()
	k, err := parseKind(kind)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Reader(ctx, feature.Query{Kind: k, IDs: ids})
	if err != nil {
		return err
	}

	var count int
	for {
		ok, err := r.HasNext()
		if err != nil {
			r.Close()
			return err
		}
		if !ok {
			break
		}
		if _, err = r.Next(); err != nil {
			r.Close()
			return err
		}
		if err = r.Remove(); err != nil {
			r.Close()
			return err
		}
		count++
	}
	if err = r.Close(); err != nil {
		return err
	}

	gn.Info("Removed <em>%s</em> %s feature(s)",
		humanize.Comma(int64(count)), k.String())
	return nil
}
