package visualize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/coldplot/internal/results"
	"github.com/mwiater/coldplot/internal/series"
)

func writeRun(t *testing.T, root, dir string, latencies ...float64) {
	t.Helper()
	full := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(full, 0o755))
	var b strings.Builder
	b.WriteString("Client Latency (ms),Burst ID\n")
	for _, l := range latencies {
		fmt.Fprintf(&b, "%g,0\n", l)
	}
	require.NoError(t, os.WriteFile(filepath.Join(full, results.LatenciesFile), []byte(b.String()), 0o644))
}

func tenSamples(base float64) []float64 {
	out := make([]float64, 10)
	for i := range out {
		out[i] = base + float64(i)
	}
	return out
}

func TestLookup(t *testing.T) {
	for _, v := range Types() {
		got, err := Lookup(v.Name())
		require.NoError(t, err)
		assert.Equal(t, v.Name(), got.Name())
		assert.NotEmpty(t, got.Description())
	}

	_, err := Lookup("histogram")
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestInferProvider(t *testing.T) {
	cases := map[string]string{
		"latency-samples/cloudlab/image-size/AWS/1536MB memory": "AWS",
		"latency-samples/vhive/burstiness":                      "vHive",
		"results/vHive/cpu-stats":                               "vHive",
	}
	for path, want := range cases {
		got, err := InferProvider(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := InferProvider("results/gcp")
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestInferParams(t *testing.T) {
	p := InferParams("../latency-samples/cloudlab/image-size/AWS/1536MB memory, st1s imgsize experiment/")
	assert.Equal(t, Params{Memory: "1536", ServiceTime: "1s"}, p)

	p = InferParams("providers/AWS/128MB/st0ms")
	assert.Equal(t, "128", p.Memory)
	assert.Equal(t, "0ms", p.ServiceTime)

	p = InferParams("../latency-samples/cloudlab/data-transfer/AWS/inline/")
	assert.Equal(t, "inline", p.TransferMode)
	assert.Empty(t, p.Memory)
	assert.Empty(t, p.ServiceTime)

	assert.Equal(t, "storage", InferParams("data-transfer/AWS/S3").TransferMode)
	assert.Empty(t, InferParams("results/cpu-stats/AWS").ServiceTime)
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "AWS Cold Starts (Service Time 0ms, Memory 1536MB)",
		imageSize.Title(Params{Provider: "AWS", ServiceTime: "0ms", Memory: "1536"}))
	assert.Equal(t, "AWS Cold Starts (Memory 1536MB)", imageSize.Title(Params{Provider: "AWS", Memory: "1536"}))
	assert.Equal(t, "vHive Cold Starts", imageSize.Title(Params{Provider: "vHive"}))
	assert.Equal(t, "AWS Data Transfers (inline)", transfer.Title(Params{Provider: "AWS", TransferMode: "inline"}))
	assert.Equal(t, "AWS Data Transfers", transfer.Title(Params{Provider: "AWS"}))
	assert.Equal(t, "AWS Burstiness CDFs", burstiness.Title(Params{Provider: "AWS"}))
	assert.Equal(t, "My-Run.png", FileName("My/Run"))
}

func TestRun_UnknownTypeFailsBeforeIO(t *testing.T) {
	_, err := Run(Options{Type: "nope", Path: filepath.Join(t.TempDir(), "AWS", "does-not-exist")})
	assert.True(t, errors.Is(err, ErrUnknownType), "got %v", err)
}

func TestRun_UnknownProvider(t *testing.T) {
	root := t.TempDir()
	writeRun(t, root, "size1-img2.9mb", 1)
	_, err := Run(Options{Type: "imgsize", Path: root})
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestRun_ImageSizeRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "AWS", "1536MB memory, st1s imgsize experiment")
	for _, burst := range []int{1, 100} {
		for i, img := range []string{"2.9", "60", "120"} {
			writeRun(t, root, fmt.Sprintf("size%d-img%smb", burst, img), tenSamples(float64(burst+100*i))...)
		}
	}

	res, err := Run(Options{Type: "imgsize", Path: root})
	require.NoError(t, err)
	assert.Equal(t, "AWS Cold Starts (Service Time 1s, Memory 1536MB)", res.Title)
	assert.Equal(t, filepath.Join(root, "AWS Cold Starts (Service Time 1s, Memory 1536MB).png"), res.Output)

	info, err := os.Stat(res.Output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	require.Len(t, res.Runs, 6)
	assert.Equal(t, "size1-img2.9mb", res.Runs[0].Name)
	assert.Equal(t, 6.0, res.Runs[0].Median)
	assert.Equal(t, 10.0, res.Runs[0].P95)
	assert.Equal(t, 120.0, res.Runs[5].X)

	table := SummaryTable(res)
	assert.Contains(t, table, res.Title)
	assert.Contains(t, table, "size100-img120mb")
}

func TestRun_OutputOverrides(t *testing.T) {
	root := filepath.Join(t.TempDir(), "results")
	writeRun(t, root, "st0ms-mem128mb", tenSamples(100)...)
	writeRun(t, root, "st0ms-mem1536mb", tenSamples(50)...)
	out := filepath.Join(t.TempDir(), "figures")

	res, err := Run(Options{Type: "cpustats", Path: root, Provider: "vHive", Output: out})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "vHive CPU Stats (Memory vs Service Time).png"), res.Output)
	_, err = os.Stat(res.Output)
	assert.NoError(t, err)
}

func TestRun_OutputInsideResultsTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "results", "AWS")
	writeRun(t, root, "st0ms-mem128mb", tenSamples(100)...)
	writeRun(t, root, "st0ms-mem1536mb", tenSamples(50)...)
	out := filepath.Join(root, "figures")

	for i := 0; i < 2; i++ {
		res, err := Run(Options{Type: "cpustats", Path: root, Output: out})
		require.NoError(t, err, "run %d", i+1)
		assert.Equal(t, filepath.Join(out, "AWS CPU Stats (Memory vs Service Time).png"), res.Output)
		assert.Len(t, res.Runs, 2)
	}
}

func TestRun_CPUStatsServiceTimes(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vHive", "cpu-stats")
	writeRun(t, root, "st1000ms-mem1536mb", tenSamples(1300)...)
	writeRun(t, root, "st0ms-mem128mb", tenSamples(100)...)
	writeRun(t, root, "st1000ms-mem128mb", tenSamples(1100)...)
	writeRun(t, root, "st0ms-mem1536mb", tenSamples(30)...)

	res, err := Run(Options{Type: "cpustats", Path: root})
	require.NoError(t, err)
	assert.Equal(t, "vHive CPU Stats (Memory vs Service Time)", res.Title)

	var order []string
	for _, r := range res.Runs {
		order = append(order, r.Name)
	}
	assert.Equal(t, []string{"st0ms-mem128mb", "st1000ms-mem128mb", "st0ms-mem1536mb", "st1000ms-mem1536mb"}, order)
	assert.Equal(t, 1105.0, res.Runs[1].Median)

	fig, err := cpuStats.Figure([]results.Run{
		{Dir: "st0ms-mem128mb", Category: 0, X: 128, Latencies: tenSamples(100)},
		{Dir: "st1000ms-mem128mb", Category: 1000, X: 128, Latencies: tenSamples(1100)},
	}, Params{Provider: "vHive"})
	require.NoError(t, err)
	p95 := fig.Panels[0]
	require.Len(t, p95.Lines, 2)
	assert.Equal(t, "0ms (service time)", p95.Lines[0].Label)
	assert.Equal(t, "1000ms (service time)", p95.Lines[1].Label)
	assert.Equal(t, []float64{1109}, p95.Lines[1].Y)
}

func TestRun_TransferRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data-transfer", "AWS", "inline")
	for _, chain := range []int{2, 5} {
		for _, payload := range []string{"1", "512", "1024"} {
			writeRun(t, root, fmt.Sprintf("chain%d-payload%skb", chain, payload), tenSamples(float64(chain*10))...)
		}
	}

	res, err := Run(Options{Type: "transfer", Path: root})
	require.NoError(t, err)
	assert.Equal(t, "transfer", res.Type)
	assert.Equal(t, "AWS Data Transfers (inline)", res.Title)
	assert.Equal(t, filepath.Join(root, "AWS Data Transfers (inline).png"), res.Output)

	info, err := os.Stat(res.Output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	require.Len(t, res.Runs, 6)
	assert.Equal(t, "chain2-payload1kb", res.Runs[0].Name)
	assert.Equal(t, 5, res.Runs[1].Category)
	assert.Equal(t, 1024.0, res.Runs[5].X)
	assert.Equal(t, 55.0, res.Runs[5].Median)
}

func TestRun_Burstiness(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vhive", "burstiness")
	writeRun(t, root, "size1", tenSamples(10)...)
	writeRun(t, root, "size200-iat10s", tenSamples(40)...)

	res, err := Run(Options{Type: "burstiness", Path: root})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "vHive Burstiness CDFs.png"), res.Output)
	require.Len(t, res.Runs, 2)
	assert.Equal(t, 1, res.Runs[0].Category)
	assert.Equal(t, 200, res.Runs[1].Category)
}

func TestRun_IncompleteGridFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "AWS")
	writeRun(t, root, "size1-img2.9mb", 1, 2)
	writeRun(t, root, "size1-img60mb", 3, 4)
	writeRun(t, root, "size100-img60mb", 5, 6)

	_, err := Run(Options{Type: "imgsize", Path: root})
	assert.True(t, errors.Is(err, series.ErrMissingPoint), "got %v", err)
	matches, _ := filepath.Glob(filepath.Join(root, "*.png"))
	assert.Empty(t, matches)
}

func TestPercentileFigure_Panels(t *testing.T) {
	runs := []results.Run{
		{Dir: "size1-img2.9mb", Category: 1, X: 2.9, Latencies: tenSamples(1)},
		{Dir: "size100-img2.9mb", Category: 100, X: 2.9, Latencies: tenSamples(20)},
	}
	fig, err := imageSize.Figure(runs, Params{Provider: "AWS"})
	require.NoError(t, err)
	assert.True(t, fig.ShareY)
	require.Len(t, fig.Panels, 2)
	assert.Equal(t, "95% percentile", fig.Panels[0].Title)
	assert.Equal(t, "Median (50% percentile)", fig.Panels[1].Title)

	median := fig.Panels[1]
	require.Len(t, median.Lines, 2)
	assert.Equal(t, "1 (burst size)", median.Lines[0].Label)
	assert.Equal(t, []float64{6}, median.Lines[0].Y)
	assert.Equal(t, []float64{25}, median.Lines[1].Y)
	assert.True(t, median.Lines[0].Annotate)

	_, err = burstiness.Figure([]results.Run{
		{Dir: "size1", Category: 1, Latencies: []float64{1}},
		{Dir: "size1-again", Category: 1, Latencies: []float64{2}},
	}, Params{})
	assert.True(t, errors.Is(err, series.ErrDuplicatePoint))
}
