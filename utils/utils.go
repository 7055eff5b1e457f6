package utils

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type Config struct {
	SourceDir     string
	BaseDir       string
	BlastDB       string
	TaxidList     string
	BlastHeader   string
	HostIndex     string
	AdapterFasta  string
	DatabaseSheet string
	UnmappedDir   string
	GenotypeCSV   string
	Threads       string
}

func ReadConfig(configPath string) (Config, error) {
	configFile, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer configFile.Close()
	var cfg Config

	scanner := bufio.NewScanner(configFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "SourceDir":
			cfg.SourceDir = value
		case "BaseDir":
			cfg.BaseDir = value
		case "blast_db":
			cfg.BlastDB = value
		case "taxid_list":
			cfg.TaxidList = value
		case "blast_header":
			cfg.BlastHeader = value
		case "host_index":
			cfg.HostIndex = value
		case "adapter_fasta":
			cfg.AdapterFasta = value
		case "database_sheet":
			cfg.DatabaseSheet = value
		case "unmapped_dir":
			cfg.UnmappedDir = value
		case "genotype_csv":
			cfg.GenotypeCSV = value
		case "threads":
			cfg.Threads = value
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func RunBashCmdVerbose(cmdStr string) error {
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

// CheckDeps verifies that every named tool resolves on PATH, so the driver
// can refuse to start before touching any data.
func CheckDeps(tools ...string) error {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			return &ExitError{Code: ExitDependency, Err: fmt.Errorf("%s not found in PATH: %w", tool, err)}
		}
	}
	return nil
}

// Threads resolves the external-tool thread budget: the config value if
// set, otherwise the batch scheduler allocation, otherwise 8.
func Threads(cfg Config) int {
	if cfg.Threads != "" {
		if n, err := strconv.Atoi(cfg.Threads); err == nil && n > 0 {
			return n
		}
	}
	if v := os.Getenv("SLURM_CPUS_PER_TASK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 8
}

// FileNonEmpty reports whether path exists as a regular file with size > 0.
// Presence of a non-empty output is the pipeline's completion marker.
func FileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// ReadCSVFile reads a whole comma-separated file. Field counts are not
// enforced because BLAST hit rows and samplesheets differ in width.
func ReadCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
