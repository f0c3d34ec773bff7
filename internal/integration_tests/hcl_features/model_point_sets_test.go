package integration_tests

import (
	"testing"

	"github.com/specialistvlad/cashgridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

var pointsFiles = map[string]string{
	"settings.hcl": `
		settings {
			t_max_calculation = 1
			group_by_column   = "product"
		}
		model_point_set "main" {
			source = "data/main.csv"
		}
		model_point_set "rates" {
			source    = "data/rates.csv"
			id_column = "policy"
		}
	`,
	"vars/premium.hcl": `
		variable "premium" {
			formula = main.amount * try(rates.loading, 1) * (t + 1)
		}
	`,
	"data/main.csv":  "id,product,amount\n1,term,10\n2,wl,20\n3,term,30\n",
	"data/rates.csv": "policy,loading\n3,2\n",
}

// TestHCLFeatures_SetsJoinOnID checks that secondary sets expose the row of
// the current main record and that records are summed per group.
func TestHCLFeatures_SetsJoinOnID(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, pointsFiles)

	// --- Assert ---
	out := testutil.ReadTable(t, result, "output")
	require.Equal(t, []string{"product", "t", "premium"}, out.Header)
	require.Equal(t, [][]string{
		{"term", "0", "70"},
		{"term", "1", "140"},
		{"wl", "0", "20"},
		{"wl", "1", "40"},
	}, out.Rows)
}

func TestHCLFeatures_SingleRecord(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, pointsFiles, "--id", "3")

	// --- Assert ---
	out := testutil.ReadTable(t, result, "output")
	require.Equal(t, [][]string{{"term", "0", "60"}, {"term", "1", "120"}}, out.Rows)
}

func TestHCLFeatures_ArrayVariable(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"model.hcl": `
			settings {
				t_max_calculation = 3
			}
			variable "pv1" {
				formula = t * 2
			}
			variable "pv2" {
				formula = 4
			}
			variable "pv_avg" {
				array   = true
				formula = [for t in range(t_max + 1) : (pv1(t) + pv2(t)) / 2]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, "--output-columns", "pv_avg")

	// --- Assert ---
	out := testutil.ReadTable(t, result, "output")
	require.Equal(t, []string{"t", "pv_avg"}, out.Header)
	testutil.AssertColumn(t, out, "pv_avg", []float64{2, 3, 4, 5})
}
