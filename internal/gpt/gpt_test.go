package gpt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/graph"
	"github.com/specialistvlad/gptgrid/internal/operators"
	"github.com/specialistvlad/gptgrid/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScript imitates gpt: it answers -h with the usage banner, logs every
// call, and succeeds or fails depending on the -Ssource value.
const fakeScript = `#!/bin/sh
if [ "$1" = "-h" ]; then
  printf '%s\n\nOptions:\n  -h  Displays this help.\n' "$BANNER"
  exit 0
fi
graph="$1"
shift
echo "$graph $*" >> "$LOG"
cp "$graph" "$DIR/last-graph.xml"
src=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -Ssource=*) src="${1#-Ssource=}" ;;
    -t) shift; out="$1" ;;
  esac
  shift
done
case "$src" in
  *fail*)
    echo "INFO: org.esa.snap.core.gpf.operators.tooladapter: starting" >&2
    echo "Error: [NodeId: Subset0] The specified region, if not null, must intersect with the image bounds." >&2
    exit 1 ;;
  *crash*)
    echo "java.lang.OutOfMemoryError: Java heap space" >&2
    exit 3 ;;
  *hang*)
    exec sleep 5 ;;
esac
echo "processed $src" > "$out"
`

type fakeGPT struct {
	path string
	dir  string
	log  string
}

func newFakeGPT(t *testing.T, banner string) *fakeGPT {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake gpt is a shell script")
	}
	dir := t.TempDir()
	f := &fakeGPT{path: filepath.Join(dir, "gpt"), dir: dir, log: filepath.Join(dir, "calls.log")}
	script := strings.NewReplacer(
		`"$BANNER"`, shellQuote(banner),
		`"$LOG"`, shellQuote(f.log),
		`"$DIR/`, `"`+dir+`/`,
	).Replace(fakeScript)
	require.NoError(t, os.WriteFile(f.path, []byte(script), 0o755))
	return f
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// calls returns the logged argument lines.
func (f *fakeGPT) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.log)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// recorder keeps every reporter event.
type recorder struct {
	events []string
}

func (r *recorder) Pending(e report.Event)   { r.add("pending", e) }
func (r *recorder) Succeeded(e report.Event) { r.add("ok", e) }
func (r *recorder) Failed(e report.Event, err error) {
	r.add("failed", e)
}

func (r *recorder) add(kind string, e report.Event) {
	label := e.Output
	if label == "" {
		label = e.Input
	}
	r.events = append(r.events, kind+" "+label)
}

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddStep(operators.NewSubset()))
	require.NoError(t, g.AddStep(operators.NewReproject()))
	return g
}

// newEngine returns an engine on a fake gpt with its own temp parent.
func newEngine(t *testing.T, opts ...Option) (*Engine, *fakeGPT, string) {
	t.Helper()
	fake := newFakeGPT(t, Banner)
	tmpParent := t.TempDir()
	e, err := New(context.Background(), fake.path, append([]Option{WithTempDir(tmpParent)}, opts...)...)
	require.NoError(t, err)
	return e, fake, tmpParent
}

func testOptions(t *testing.T) RunOptions {
	opts := NewRunOptions()
	opts.OutputFolder = filepath.Join(t.TempDir(), "proc")
	return opts
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "transient artifacts left in %s", dir)
}

func TestNew_Validation(t *testing.T) {
	t.Run("accepts gpt", func(t *testing.T) {
		fake := newFakeGPT(t, Banner)
		e, err := New(context.Background(), fake.path)
		require.NoError(t, err)
		assert.Equal(t, fake.path, e.Path())
	})

	t.Run("rejects a different banner", func(t *testing.T) {
		fake := newFakeGPT(t, "Usage:\n  gdal_translate [options]")
		_, err := New(context.Background(), fake.path)

		var notFound *faults.ToolNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, fake.path, notFound.Path)
	})

	t.Run("rejects a missing binary", func(t *testing.T) {
		_, err := New(context.Background(), filepath.Join(t.TempDir(), "gpt"))

		var notFound *faults.ToolNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Error(t, notFound.Err)
	})

	t.Run("rejects a failing probe", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("shell script")
		}
		path := filepath.Join(t.TempDir(), "gpt")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 2\n"), 0o755))

		_, err := New(context.Background(), path)

		var notFound *faults.ToolNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestRun_BatchIsolation(t *testing.T) {
	// Arrange
	rec := &recorder{}
	e, fake, tmpParent := newEngine(t, WithReporter(rec))
	opts := testOptions(t)
	inputs := []string{"/data/first.dim", "/data/fail.dim", "/data/third.dim"}

	// Act
	summary, err := e.Run(context.Background(), testGraph(t), inputs, opts)

	// Assert
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 3)
	assert.Equal(t, 2, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
	assert.True(t, summary.Outcomes[0].OK())
	assert.True(t, summary.Outcomes[2].OK())
	assert.Equal(t, uint64(len("processed /data/first.dim\n")), summary.Outcomes[0].OutputSize)

	failed := summary.Outcomes[1]
	assert.Zero(t, failed.OutputSize)
	assert.Equal(t, Failed, failed.State)
	assert.Equal(t, Invoking, failed.FailedIn)
	var execErr *faults.ToolExecutionError
	require.ErrorAs(t, failed.Err, &execErr)
	assert.Equal(t, 1, execErr.ExitCode)
	assert.Equal(t, "[NodeId: Subset0] The specified region, if not null, must intersect with the\nimage bounds.", execErr.Message)
	assert.Contains(t, string(execErr.Stderr), "INFO: org.esa.snap")
	require.ErrorContains(t, summary.Err(), "/data/fail.dim")

	firstOut := filepath.Join(opts.OutputFolder, "first_subset_reprojected.dim")
	assert.Equal(t, firstOut, summary.Outcomes[0].Output)
	assert.FileExists(t, firstOut)
	assert.NoFileExists(t, filepath.Join(opts.OutputFolder, "fail_subset_reprojected.dim"))
	assert.FileExists(t, filepath.Join(opts.OutputFolder, "third_subset_reprojected.dim"))

	assert.Len(t, fake.calls(t), 3)
	assert.Equal(t, []string{
		"pending " + firstOut, "ok " + firstOut,
		"pending " + filepath.Join(opts.OutputFolder, "fail_subset_reprojected.dim"),
		"failed " + filepath.Join(opts.OutputFolder, "fail_subset_reprojected.dim"),
		"pending " + filepath.Join(opts.OutputFolder, "third_subset_reprojected.dim"),
		"ok " + filepath.Join(opts.OutputFolder, "third_subset_reprojected.dim"),
	}, rec.events)
	assertEmptyDir(t, tmpParent)
}

func TestRun_InvocationArguments(t *testing.T) {
	// Arrange
	e, fake, _ := newEngine(t)
	g := graph.New()
	reproject := operators.NewReproject()
	reproject.CollocateWith = "/data/reference.dim"
	require.NoError(t, g.AddStep(reproject))
	opts := testOptions(t)
	opts.Format = "GeoTIFF"

	// Act
	out, err := e.RunOne(context.Background(), g, "/data/scene.dim", opts)

	// Assert
	require.NoError(t, err)
	require.True(t, out.OK(), "%v", out.Err)
	calls := fake.calls(t)
	require.Len(t, calls, 1)
	fields := strings.Fields(calls[0])
	assert.Equal(t, graphFileName, filepath.Base(fields[0]))
	assert.Equal(t, []string{
		"-Ssource=/data/scene.dim",
		"-ScollocateWith=/data/reference.dim",
		"-t", filepath.Join(opts.OutputFolder, "scene_reprojected.tif"),
		"-f", "GeoTIFF",
	}, fields[1:])
	assert.NoDirExists(t, filepath.Dir(fields[0]))

	serialized, err := os.ReadFile(filepath.Join(fake.dir, "last-graph.xml"))
	require.NoError(t, err)
	assert.Equal(t, g.String(), string(serialized))
}

func TestRun_SuffixOverrideAndPrefix(t *testing.T) {
	e, _, _ := newEngine(t)
	opts := testOptions(t)
	opts.Prefix = "chl_"
	empty := ""
	opts.Suffix = &empty

	out, err := e.RunOne(context.Background(), testGraph(t), "/data/scene.dim", opts)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.OutputFolder, "chl_scene.dim"), out.Output)
}

func TestRun_NormalizesSentinel3Archive(t *testing.T) {
	// Arrange
	e, fake, tmpParent := newEngine(t)
	archive := filepath.Join(t.TempDir(), "S3A_OL_2_WFR____20210615T101530_x.zip")
	writeZip(t, archive, map[string]string{
		"S3A_OL_2_WFR____20210615T101530_x.SEN3/xfdumanifest.xml": "<manifest/>",
		"S3A_OL_2_WFR____20210615T101530_x.SEN3/chl_nn.nc":        "nc",
	})
	opts := testOptions(t)
	opts.DateOnly = true

	// Act
	out, err := e.RunOne(context.Background(), testGraph(t), archive, opts)

	// Assert
	require.NoError(t, err)
	require.True(t, out.OK(), "%v", out.Err)
	assert.True(t, strings.HasSuffix(out.Effective, filepath.Join("S3A_OL_2_WFR____20210615T101530_x.SEN3", Manifest)))
	assert.True(t, strings.HasPrefix(out.Effective, tmpParent))
	assert.Equal(t, filepath.Join(opts.OutputFolder, "2021-06-15_subset_reprojected.dim"), out.Output)
	assert.Contains(t, fake.calls(t)[0], "-Ssource="+out.Effective)
	assertEmptyDir(t, tmpParent)
}

func TestRun_NormalizesSentinel3Folder(t *testing.T) {
	e, _, _ := newEngine(t)

	out, err := e.RunOne(context.Background(), testGraph(t), "/data/S3B_OL_1_EFR.SEN3", testOptions(t))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/S3B_OL_1_EFR.SEN3", Manifest), out.Effective)
}

func TestRun_ArchiveWithoutManifestFails(t *testing.T) {
	e, fake, tmpParent := newEngine(t)
	archive := filepath.Join(t.TempDir(), "S3A_broken.zip")
	writeZip(t, archive, map[string]string{"other/file.txt": "x"})

	out, err := e.RunOne(context.Background(), testGraph(t), archive, testOptions(t))

	require.NoError(t, err)
	assert.Equal(t, Failed, out.State)
	assert.Equal(t, Normalizing, out.FailedIn)
	assert.ErrorIs(t, out.Err, os.ErrNotExist)
	assert.Empty(t, fake.calls(t))
	assertEmptyDir(t, tmpParent)
}

func TestRun_NamingFailureSkipsInvocation(t *testing.T) {
	// Arrange
	rec := &recorder{}
	e, fake, _ := newEngine(t, WithReporter(rec))
	opts := testOptions(t)
	opts.DateTimeOnly = true

	// Act
	summary, err := e.Run(context.Background(), testGraph(t), []string{"/data/undated.dim", "/data/S2A_20200101T000102.dim"}, opts)

	// Assert
	require.NoError(t, err)
	first := summary.Outcomes[0]
	var naming *faults.NamingError
	require.ErrorAs(t, first.Err, &naming)
	assert.Equal(t, "date_time_only", naming.Policy)
	assert.Equal(t, Naming, first.FailedIn)
	assert.Equal(t, []string{"pending /data/undated.dim", "failed /data/undated.dim"}, rec.events[:2])

	assert.Equal(t, filepath.Join(opts.OutputFolder, "2020-01-01T000102_subset_reprojected.dim"), summary.Outcomes[1].Output)
	assert.Len(t, fake.calls(t), 1)
}

func TestRun_FatalErrors(t *testing.T) {
	e, fake, _ := newEngine(t)

	t.Run("empty graph", func(t *testing.T) {
		summary, err := e.Run(context.Background(), graph.New(), []string{"/data/a.dim"}, testOptions(t))

		var cfg *faults.ConfigurationError
		require.ErrorAs(t, err, &cfg)
		assert.Empty(t, summary.Outcomes)
	})

	t.Run("conflicting naming policies", func(t *testing.T) {
		opts := testOptions(t)
		opts.DateOnly, opts.DateTimeOnly = true, true

		_, err := e.RunOne(context.Background(), testGraph(t), "/data/a.dim", opts)

		var cfg *faults.ConfigurationError
		require.ErrorAs(t, err, &cfg)
	})

	t.Run("output folder cannot be created", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		opts := testOptions(t)
		opts.OutputFolder = filepath.Join(blocker, "proc")

		_, err := e.Run(context.Background(), testGraph(t), []string{"/data/a.dim"}, opts)

		var ioErr *faults.IOError
		require.ErrorAs(t, err, &ioErr)
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		summary, err := e.Run(ctx, testGraph(t), []string{"/data/a.dim"}, testOptions(t))

		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, summary.Outcomes)
	})

	assert.Empty(t, fake.calls(t))
}

func TestRun_FailureWithoutErrorLine(t *testing.T) {
	e, _, _ := newEngine(t)

	out, err := e.RunOne(context.Background(), testGraph(t), "/data/crash.dim", testOptions(t))

	require.NoError(t, err)
	var execErr *faults.ToolExecutionError
	require.ErrorAs(t, out.Err, &execErr)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Empty(t, execErr.Message)
	assert.Equal(t, "gpt exited with status 3", execErr.Error())
	assert.Contains(t, string(execErr.Stderr), "OutOfMemoryError")
}

func TestRun_StreamedStderrIsNotParsed(t *testing.T) {
	// Arrange
	var live bytes.Buffer
	e, _, _ := newEngine(t, WithStderr(&live))
	opts := testOptions(t)
	opts.SuppressStderr = false

	// Act
	out, err := e.RunOne(context.Background(), testGraph(t), "/data/fail.dim", opts)

	// Assert
	require.NoError(t, err)
	var execErr *faults.ToolExecutionError
	require.ErrorAs(t, out.Err, &execErr)
	assert.Empty(t, execErr.Message)
	assert.Nil(t, execErr.Stderr)
	assert.Contains(t, live.String(), "Error: [NodeId: Subset0]")
}

func TestRun_Timeout(t *testing.T) {
	e, _, tmpParent := newEngine(t)
	opts := testOptions(t)
	opts.Timeout = 200 * time.Millisecond

	started := time.Now()
	out, err := e.RunOne(context.Background(), testGraph(t), "/data/hang.dim", opts)

	require.NoError(t, err)
	assert.Less(t, time.Since(started), 4*time.Second)
	assert.Equal(t, Invoking, out.FailedIn)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
	assertEmptyDir(t, tmpParent)
}

// stagingFetcher pretends to download remote:// inputs.
type stagingFetcher struct{ fail bool }

func (stagingFetcher) Supports(input string) bool { return strings.HasPrefix(input, "remote://") }

func (f stagingFetcher) Fetch(ctx context.Context, input, dir string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("fetching %s: connection refused", input)
	}
	local := filepath.Join(dir, strings.TrimPrefix(input, "remote://"))
	return local, os.WriteFile(local, []byte("staged"), 0o644)
}

func TestRun_StagesRemoteInputs(t *testing.T) {
	t.Run("staged path is passed to gpt", func(t *testing.T) {
		e, fake, tmpParent := newEngine(t, WithFetcher(stagingFetcher{}))

		out, err := e.RunOne(context.Background(), testGraph(t), "remote://scene.dim", testOptions(t))

		require.NoError(t, err)
		require.True(t, out.OK(), "%v", out.Err)
		assert.True(t, strings.HasPrefix(out.Effective, tmpParent))
		assert.Contains(t, fake.calls(t)[0], "-Ssource="+out.Effective)
		assertEmptyDir(t, tmpParent)
	})

	t.Run("staging failure is per input", func(t *testing.T) {
		e, fake, _ := newEngine(t, WithFetcher(stagingFetcher{fail: true}))

		summary, err := e.Run(context.Background(), testGraph(t), []string{"remote://a.dim", "/data/b.dim"}, testOptions(t))

		require.NoError(t, err)
		assert.Equal(t, Staging, summary.Outcomes[0].FailedIn)
		assert.True(t, summary.Outcomes[1].OK())
		assert.Len(t, fake.calls(t), 1)
	})
}

func TestErrorMessage(t *testing.T) {
	stderr := []byte("INFO: x\r\nError: short message\r\nError: second\n")

	assert.Equal(t, "short message", errorMessage(stderr, 80))
	assert.Equal(t, "", errorMessage([]byte("no marker here\n"), 80))
	assert.Equal(t, "a few\nwords", errorMessage([]byte("Error: a few words"), 6))
	assert.Equal(t, "a few words", errorMessage([]byte("Error: a few words"), 0))
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}
