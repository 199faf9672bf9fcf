package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/hupe1980/mnistknn/idx"
	"github.com/hupe1980/mnistknn/resource"
	"github.com/hupe1980/mnistknn/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, c idx.Compression) string {
	t.Helper()

	dir := t.TempDir()
	samples := testutil.NewRNG(3).ClusteredSamples(30, []uint8{5, 0, 4}, 16, 4)
	images, labels := testutil.EncodeIDX(t, samples, 4, 4, c)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-images.idx3-ubyte"), images, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-labels.idx1-ubyte"), labels, 0o644))
	return dir
}

func parseAccuracy(t *testing.T, out, prefix string) float64 {
	t.Helper()

	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, prefix); ok {
			acc, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			require.NoError(t, err)
			return acc
		}
	}
	t.Fatalf("no %q line in %q", prefix, out)
	return 0
}

func TestRun_Local(t *testing.T) {
	dir := writeFixtures(t, idx.CompressionGzip)
	reportPath := filepath.Join(t.TempDir(), "report.json")
	metricsPath := filepath.Join(t.TempDir(), "mnistknn.prom")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-data", dir,
		"-k", "3",
		"-query-parallelism", "2",
		"-seed", "11",
		"-validate",
		"-report", reportPath,
		"-metrics-textfile", metricsPath,
		"-log-format", "json",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.GreaterOrEqual(t, parseAccuracy(t, stdout.String(), "accuracy:"), 0.9)
	assert.GreaterOrEqual(t, parseAccuracy(t, stdout.String(), "validation accuracy:"), 0.9)
	assert.Contains(t, stderr.String(), `"msg":"dataset split"`)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 3, report.K)
	assert.Equal(t, "euclidean", report.Metric)
	assert.Equal(t, 90, report.Samples)
	assert.Equal(t, 16, report.Features)
	assert.Equal(t, SplitReport{Training: 72, Testing: 9, Validation: 9}, report.Split)
	require.NotNil(t, report.Testing)
	assert.Equal(t, 9, report.Testing.Total)
	assert.Zero(t, report.Testing.Failed)
	assert.Len(t, report.Testing.Missed, report.Testing.Total-report.Testing.Correct)
	require.NotNil(t, report.Validation)
	assert.Equal(t, 9, report.Validation.Total)
	assert.Len(t, report.Validation.Missed, report.Validation.Total-report.Validation.Correct)
	require.Len(t, report.Classes, 3)
	assert.Equal(t, ClassReport{Index: 0, Label: 5, Accuracy: report.Classes[0].Accuracy}, report.Classes[0])

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "mnistknn_")
}

func TestRun_MaxSamples(t *testing.T) {
	dir := writeFixtures(t, idx.CompressionNone)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-data", dir, "-max-samples", "30", "-seed", "1", "-report", reportPath,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 30, report.Samples)
	assert.Equal(t, SplitReport{Training: 24, Testing: 3, Validation: 3}, report.Split)
}

func TestRun_MemoryLimit(t *testing.T) {
	dir := writeFixtures(t, idx.CompressionNone)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-data", dir, "-memory-limit", "100"}, &stdout, &stderr)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
}

func TestRun_MissingFiles(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-data", t.TempDir()}, &stdout, &stderr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stdout.String())
}

func TestRun_KLargerThanTraining(t *testing.T) {
	dir := writeFixtures(t, idx.CompressionNone)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-data", dir, "-k", "500"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestRun_InvalidFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-metric", "cosine"}, &stdout, &stderr)
	assert.ErrorIs(t, err, ErrInvalidMetric)
}

func TestRun_Canceled(t *testing.T) {
	dir := writeFixtures(t, idx.CompressionNone)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"-data", dir}, &stdout, &stderr)
	assert.ErrorIs(t, err, context.Canceled)
}
