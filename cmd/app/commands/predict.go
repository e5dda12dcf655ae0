package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/creasty/defaults"
	"github.com/spf13/cobra"

	"NextWorth/internal/di"
	"NextWorth/internal/domain/models"
	xhttp "NextWorth/pkg/http"
)

var predictFile string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one prediction request offline",
	Long: `Reads a prediction request (the POST /api/predict body) from a file, or
stdin with "-", runs it through the configured forecaster and prints the
response JSON. Logs go to stderr.

Example:
  app predict --file request.json
  cat request.json | app predict --file -`,
	RunE: runPredictCmd,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVarP(&predictFile, "file", "f", "-", "request JSON file, - for stdin")
}

// runner is the part of the pipeline the command needs.
type runner interface {
	Run(ctx context.Context, req models.PredictRequest) (*models.ForecastResponse, error)
}

func runPredictCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	cfg.Logging.Output = "stderr"

	orch, err := di.InitializeOrchestrator(cfg)
	if err != nil {
		return fmt.Errorf("pipeline initialization failed: %w", err)
	}

	in := cmd.InOrStdin()
	if predictFile != "-" {
		f, err := os.Open(predictFile)
		if err != nil {
			return fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
	defer cancel()
	return predict(ctx, orch, in, cmd.OutOrStdout())
}

func predict(ctx context.Context, r runner, in io.Reader, out io.Writer) error {
	body, err := io.ReadAll(io.LimitReader(in, xhttp.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	if xhttp.IsEmptyPayload(body) {
		return xhttp.BadRequestError(xhttp.MsgNoData)
	}

	var req models.PredictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	if err := defaults.Set(&req); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	if err := xhttp.ValidateStruct(&req); err != nil {
		return err
	}

	resp, err := r.Run(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
