/*
 * main.go, part of molforge.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 */

// molforge is a command-line front end for the mol library: format
// conversion, geometric sanity checks, coordination-geometry
// classification and charge/spin suggestion.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/molforge/mol"
)

var (
	cfgFile string
	verbose bool
)

func initConfig() error {
	viper.SetDefault("sanity.graph_dist_cutoff", 1.45)
	viper.SetDefault("sanity.smallest_dist_cutoff", 0.55)
	viper.SetDefault("sanity.min_dist_cutoff", 3.0)
	viper.SetDefault("sanity.metal_cov_rad", 0.0)
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		mol.SetLogger(l)
	}
	return nil
}

// readStructure accepts a filename or a literal structure string, so
// mol2 blocks can be piped in; "-" reads from stdin.
func readStructure(arg string) (*mol.Molecule, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return mol.Convert(string(data))
	}
	return mol.Convert(arg)
}

func sanityParams(assembly bool) mol.SanityParams {
	p := mol.FinalSanityDefaults()
	if assembly {
		p = mol.AssemblySanityDefaults()
	}
	p.GraphDistCutoff = viper.GetFloat64("sanity.graph_dist_cutoff")
	p.SmallestDistCutoff = viper.GetFloat64("sanity.smallest_dist_cutoff")
	p.MinDistCutoff = viper.GetFloat64("sanity.min_dist_cutoff")
	p.MetalCovRad = viper.GetFloat64("sanity.metal_cov_rad")
	return p
}

func newConvertCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a structure between xyz, rxyz and mol2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := readStructure(args[0])
			if err != nil {
				return err
			}
			switch {
			case out == "":
				s, err := mol.Mol2String(M, args[0])
				if err != nil {
					return err
				}
				fmt.Print(s)
				return nil
			case strings.HasSuffix(out, ".xyz"):
				return mol.XYZFileWrite(out, M)
			case strings.HasSuffix(out, ".mol2"):
				return mol.Mol2FileWrite(out, M)
			}
			return fmt.Errorf("unsupported output format: %s", out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (.xyz or .mol2); stdout mol2 when omitted")
	return cmd
}

func newSanityCmd() *cobra.Command {
	var assembly bool
	cmd := &cobra.Command{
		Use:   "sanity <input>",
		Short: "Run geometric sanity checks on a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := readStructure(args[0])
			if err != nil {
				return err
			}
			p := sanityParams(assembly)
			p.Enabled = true
			if err := M.GraphSanityCheck(p); err != nil {
				return err
			}
			M.DistSanityCheck(p)
			fmt.Printf("sane: %v\n", M.DistsSane)
			for name, diag := range M.SanityChecks {
				if len(diag.Pairs) == 0 && len(diag.Atoms) == 0 && !diag.NaNPositions {
					continue
				}
				fmt.Printf("%s failed (cutoff %g):\n", name, diag.Cutoff)
				if diag.NaNPositions {
					fmt.Println("  NaN positions")
				}
				for pair, v := range diag.Pairs {
					fmt.Printf("  atoms %d-%d: %.3f\n", pair[0], pair[1], v)
				}
				for atom, v := range diag.Atoms {
					fmt.Printf("  atom %d: %.3f\n", atom, v)
				}
			}
			if !M.DistsSane {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&assembly, "assembly", false, "use the looser assembly-stage cutoffs")
	return cmd
}

func newGeoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geo <input>",
		Short: "Classify the coordination geometry of each metal center",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := readStructure(args[0])
			if err != nil {
				return err
			}
			geos, err := M.ClassifyMetalGeometry()
			if err != nil {
				return err
			}
			for _, g := range geos {
				fmt.Printf("%s (atom %d): %s  mae=%.2f  confidence=%.2f\n",
					g.Metal, g.MetalIndex, g.GeoType, g.MAELoss, g.Confidence)
				for _, r := range g.Ranking {
					fmt.Printf("    %-32s %.2f\n", r.GeoType, r.MAELoss)
				}
			}
			return nil
		},
	}
}

func newSpinCmd() *cobra.Command {
	var detect bool
	cmd := &cobra.Command{
		Use:   "spin <input>",
		Short: "Suggest charge and spin for a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := readStructure(args[0])
			if err != nil {
				return err
			}
			if detect {
				if err := M.DetectChargeSpin(nil); err != nil {
					return err
				}
			} else if err := M.CalcSuggestedSpin(mol.EstimatorParams{}); err != nil {
				return err
			}
			charge, _ := M.Charge()
			uhf, _ := M.UHF()
			xtbCharge, _ := M.XTBCharge()
			xtbUHF, _ := M.XTBUHF()
			fmt.Printf("charge: %g\nunpaired electrons: %d\nxtb charge: %g\nxtb unpaired electrons: %d\n",
				charge, uhf, xtbCharge, xtbUHF)
			return nil
		},
	}
	cmd.Flags().BoolVar(&detect, "detect", false, "bootstrap from reference tables instead of stored state")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "molforge",
		Short:         "Structure toolbox for metal-complex generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file with sanity cutoffs")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(newConvertCmd(), newSanityCmd(), newGeoCmd(), newSpinCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "molforge:", err)
		os.Exit(1)
	}
}
