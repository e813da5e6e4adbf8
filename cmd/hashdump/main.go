// Command hashdump prints golden values for the kernel hash and the Euler
// helpers, for comparison against other implementations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/math/f32"

	"xform-kernel/internal/hash"
	"xform-kernel/internal/mathutil"
	"xform-kernel/internal/transform"
)

func main() {
	root := &cobra.Command{
		Use:          "hashdump",
		Short:        "Print kernel hash and transform reference values",
		SilenceUsage: true,
	}
	root.AddCommand(newHashCmd(), newEulerCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newHashCmd() *cobra.Command {
	var x0, y0 int32
	var w, h int
	var float bool

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print Int2D over a rectangle of lattice coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if w <= 0 || h <= 0 {
				return fmt.Errorf("hashdump: width and height must be positive")
			}
			out := cmd.OutOrStdout()
			// Coordinates wrap like the lattice they index, so a range
			// starting near MaxInt32 continues at MinInt32.
			for j := range h {
				y := y0 + int32(j)
				for i := range w {
					x := x0 + int32(i)
					if float {
						fmt.Fprintf(out, "%d %d %.8f\n", x, y, hash.Int2DFloat(uint32(x), uint32(y)))
					} else {
						fmt.Fprintf(out, "%d %d %#08x\n", x, y, hash.Int2DSigned(x, y))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().Int32Var(&x0, "x", 0, "first x coordinate")
	cmd.Flags().Int32Var(&y0, "y", 0, "first y coordinate")
	cmd.Flags().IntVar(&w, "width", 4, "number of columns")
	cmd.Flags().IntVar(&h, "height", 4, "number of rows")
	cmd.Flags().BoolVar(&float, "float", false, "print values mapped to [0, 1)")
	return cmd
}

func newEulerCmd() *cobra.Command {
	var deg []float64

	cmd := &cobra.Command{
		Use:   "euler",
		Short: "Print Euler and EulerXYZ for angles given in degrees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(deg) != 3 {
				return fmt.Errorf("hashdump: --angles needs 3 values, got %d", len(deg))
			}
			e := f32.Vec3{
				float32(mathutil.Deg2Rad(deg[0])),
				float32(mathutil.Deg2Rad(deg[1])),
				float32(mathutil.Deg2Rad(deg[2])),
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.Euler(e).Dump("euler"))
			fmt.Fprint(out, transform.EulerXYZ(e).Dump("xyz"))
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&deg, "angles", []float64{0, 0, 0}, "rotation angles in degrees")
	return cmd
}
