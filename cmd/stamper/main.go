package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"hospital-pdf-manager/config"
	"hospital-pdf-manager/internal/adapter/pdf"
	"hospital-pdf-manager/internal/adapter/storage/sqlite"
	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/internal/core/ports"
	"hospital-pdf-manager/internal/service"
	"hospital-pdf-manager/pkg/apperror"
	"hospital-pdf-manager/pkg/logger"
	"hospital-pdf-manager/pkg/report"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("stamper", pflag.ContinueOnError)

	configPath := flags.String("config", "", "path to config file")
	center := flags.String("center", "", "center code (CMC, MNP, LDH)")
	timepoint := flags.String("timepoint", "", "timepoint (A0, A1, A2)")
	number := flags.String("number", "", "hospital number")
	op := flags.String("op", string(domain.OperationDownload), "operation (download, print)")
	merge := flags.Bool("merge", false, "merge all stamped files into one document")
	outDir := flags.String("out", "", "output directory (download only)")
	reason := flags.String("reason", "", "reason when repeating a recorded operation")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stamper [flags] file.pdf [file.pdf ...]\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	in := &inputs{
		Center:    *center,
		Timepoint: *timepoint,
		SubjectID: *number,
		Operation: domain.OperationType(*op),
		Merge:     *merge,
		OutDir:    *outDir,
		Reason:    *reason,
		Files:     flags.Args(),
	}
	if err := in.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	if in.OutDir == "" {
		in.OutDir = cfg.Output.Dir
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if cfg.Log.File != "" {
		fileLog, closer, err := logger.NewFile(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			return 1
		}
		defer closer.Close()
		log = fileLog
	}
	ctx := context.Background()

	store, err := sqlite.Open(cfg.Database.ResolvedDatabasePath(), sqlite.Options{
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open operation log")
		return 1
	}
	defer store.Close()

	auditSvc := service.NewAuditService(sqlite.NewOperationRepo(store), log)
	composer := pdf.NewComposer(log)
	sources := pdf.NewDirSource(cfg.Files.Dir)
	batchSvc := service.NewBatchService(composer, sources, log)

	key := in.key()
	prior := auditSvc.CheckDuplicate(ctx, key)
	if prior != nil {
		if err := validateReason(in.Reason); err != nil {
			fmt.Fprintf(os.Stderr, "this exact operation was already performed:\n")
			fmt.Fprintf(os.Stderr, "  recorded at: %s\n", prior.Timestamp)
			fmt.Fprintf(os.Stderr, "  performed by: %s\n", prior.Actor)
			fmt.Fprintf(os.Stderr, "  files: %v\n", prior.Files)
			fmt.Fprintf(os.Stderr, "repeat it with --reason: %v\n", err)
			return 2
		}
	}

	requests := make([]domain.StampRequest, 0, len(in.Files))
	for _, f := range in.Files {
		requests = append(requests, domain.StampRequest{SourceID: f, Label: in.stampLabel()})
	}

	outcome := batchSvc.ProcessAll(ctx, requests, in.Merge)
	summary := report.FromOutcome(outcome)
	if summary.FullFailure() {
		fmt.Fprint(os.Stderr, summary.String())
		return 1
	}

	outputPath, written, err := writeOutputs(in, outcome, &summary)
	if err != nil {
		log.Error().Err(err).Msg("failed to write output")
		return 1
	}
	if written == 0 {
		// Nothing reached the destination, so there is nothing to audit.
		fmt.Fprint(os.Stderr, summary.String())
		return 1
	}

	id, err := auditSvc.RecordOperation(ctx, key, prior != nil, in.Reason, outputPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to record operation")
		return 1
	}
	log.Info().Int64("record_id", id).Msg("operation recorded")

	fmt.Print(summary.String())
	return exitCode(summary, outcome)
}

// exitCode folds partial file failures and a failed merge into the
// process exit status.
func exitCode(summary report.BatchSummary, outcome *ports.BatchOutcome) int {
	if summary.Failed > 0 || outcome.MergeErr != nil {
		return 1
	}
	return 0
}

// writeOutputs places the stamped documents on disk. Downloads go to
// the output directory; print jobs go to a temp directory and their
// location is not recorded, since spooled files are transient.
// A file that cannot be written is marked failed in the summary and
// the rest of the batch still goes out; the count of committed outputs
// is returned so the caller can decide whether there is anything to
// record.
func writeOutputs(in *inputs, outcome *ports.BatchOutcome, summary *report.BatchSummary) (string, int, error) {
	dir := in.OutDir
	transient := in.Operation == domain.OperationPrint
	if transient {
		tmp, err := os.MkdirTemp("", "stamper-print-")
		if err != nil {
			return "", 0, fmt.Errorf("create print spool dir: %w", err)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create output dir: %w", err)
	}

	written := 0
	if in.Merge && outcome.Merged != nil {
		name := fmt.Sprintf("%s_%s_%s_merged.pdf", in.Center, in.SubjectID, in.Timepoint)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, outcome.Merged.Bytes, 0o644); err != nil {
			return "", 0, apperror.ErrPermissionDenied(path, err)
		}
		fmt.Printf("wrote %s\n", path)
		written++
	} else {
		for _, doc := range outcome.Succeeded() {
			path := filepath.Join(dir, filepath.Base(doc.SourceID))
			if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
				summary.MarkFailed(doc.SourceID, apperror.ErrPermissionDenied(path, err))
				continue
			}
			fmt.Printf("wrote %s\n", path)
			written++
		}
	}

	if transient {
		return "", written, nil
	}
	return dir, written, nil
}
