// Command benchguard runs the shell coder benchmarks and fails when any of
// them exceeds its configured time or allocation ceiling.
//
// The encode and decode hot paths are expected to stay allocation free; the
// ceilings live in tools/bench_guardrails.json.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type benchmarkCeiling struct {
	MaxNsOp     float64 `json:"max_ns_op"`
	MaxBOp      float64 `json:"max_b_op"`
	MaxAllocsOp float64 `json:"max_allocs_op"`
}

type suite struct {
	Package    string                      `json:"package"`
	BenchRegex string                      `json:"bench_regex"`
	Benchmarks map[string]benchmarkCeiling `json:"benchmarks"`
}

type guardConfig struct {
	Count     int     `json:"count"`
	Benchtime string  `json:"benchtime"`
	CPU       int     `json:"cpu"`
	Suites    []suite `json:"suites"`
}

type sample struct {
	NsOp     float64
	BOp      float64
	AllocsOp float64
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "tools/bench_guardrails.json", "path to bench guardrails config")
	flag.Parse()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}

	var violations []string
	for _, s := range cfg.Suites {
		out, err := runBench(cfg, s)
		if err != nil {
			fatalf("run benchmarks for %s: %v", s.Package, err)
		}
		samples, err := parseBenchmarkOutput(out)
		if err != nil {
			fatalf("parse benchmark output for %s: %v", s.Package, err)
		}
		violations = append(violations, evaluate(s, samples)...)
	}

	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintln(os.Stderr, v)
		}
		os.Exit(1)
	}
	fmt.Println("benchguard: all configured benchmarks are within guardrails")
}

func loadConfig(path string) (*guardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg guardConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *guardConfig) error {
	if cfg.Count <= 0 {
		return errors.New("count must be > 0")
	}
	if cfg.CPU <= 0 {
		return errors.New("cpu must be > 0")
	}
	if cfg.Benchtime == "" {
		return errors.New("benchtime must be set")
	}
	if len(cfg.Suites) == 0 {
		return errors.New("suites must be non-empty")
	}
	for i, s := range cfg.Suites {
		if s.Package == "" {
			return fmt.Errorf("suite %d: package must be set", i)
		}
		if s.BenchRegex == "" {
			return fmt.Errorf("suite %d: bench_regex must be set", i)
		}
		if len(s.Benchmarks) == 0 {
			return fmt.Errorf("suite %d: benchmarks must be non-empty", i)
		}
	}
	return nil
}

func runBench(cfg *guardConfig, s suite) ([]byte, error) {
	cmd := exec.Command("go", "test",
		"-run", "^$",
		"-bench", s.BenchRegex,
		"-benchmem",
		"-count", strconv.Itoa(cfg.Count),
		"-benchtime", cfg.Benchtime,
		"-cpu", strconv.Itoa(cfg.CPU),
		s.Package,
	)
	cmd.Env = append(os.Environ(), "GOMAXPROCS=1")

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	fmt.Print(buf.String())
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var benchLineRe = regexp.MustCompile(`^(Benchmark\S+?)(?:-\d+)?\s+\d+\s+([0-9.eE+\-]+)\s+ns/op\s+([0-9.eE+\-]+)\s+B/op\s+([0-9.eE+\-]+)\s+allocs/op$`)

func parseBenchmarkOutput(out []byte) (map[string][]sample, error) {
	result := make(map[string][]sample)
	for _, line := range strings.Split(string(out), "\n") {
		m := benchLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if len(m) != 5 {
			continue
		}
		var vals [3]float64
		for i := range vals {
			v, err := strconv.ParseFloat(m[i+2], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", m[1], err)
			}
			vals[i] = v
		}
		result[m[1]] = append(result[m[1]], sample{NsOp: vals[0], BOp: vals[1], AllocsOp: vals[2]})
	}
	if len(result) == 0 {
		return nil, errors.New("no benchmark rows parsed")
	}
	return result, nil
}

func evaluate(s suite, samples map[string][]sample) []string {
	var violations []string
	names := make([]string, 0, len(s.Benchmarks))
	for name := range s.Benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ceiling := s.Benchmarks[name]
		rows := samples[name]
		if len(rows) == 0 {
			violations = append(violations, fmt.Sprintf("benchguard: %s: missing benchmark %s", s.Package, name))
			continue
		}
		got := medianSample(rows)
		fmt.Printf("benchguard: %-24s ns/op=%.1f (max %.1f), B/op=%.1f (max %.1f), allocs/op=%.1f (max %.1f)\n",
			name, got.NsOp, ceiling.MaxNsOp, got.BOp, ceiling.MaxBOp, got.AllocsOp, ceiling.MaxAllocsOp)

		if got.NsOp > ceiling.MaxNsOp {
			violations = append(violations, fmt.Sprintf("benchguard: %s ns/op regression: measured %.1f > max %.1f", name, got.NsOp, ceiling.MaxNsOp))
		}
		if got.BOp > ceiling.MaxBOp {
			violations = append(violations, fmt.Sprintf("benchguard: %s B/op regression: measured %.1f > max %.1f", name, got.BOp, ceiling.MaxBOp))
		}
		if got.AllocsOp > ceiling.MaxAllocsOp {
			violations = append(violations, fmt.Sprintf("benchguard: %s allocs/op regression: measured %.1f > max %.1f", name, got.AllocsOp, ceiling.MaxAllocsOp))
		}
	}
	return violations
}

func medianSample(rows []sample) sample {
	ns := make([]float64, len(rows))
	b := make([]float64, len(rows))
	allocs := make([]float64, len(rows))
	for i, r := range rows {
		ns[i], b[i], allocs[i] = r.NsOp, r.BOp, r.AllocsOp
	}
	return sample{NsOp: median(ns), BOp: median(b), AllocsOp: median(allocs)}
}

func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "benchguard: "+format+"\n", args...)
	os.Exit(2)
}
