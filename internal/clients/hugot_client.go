package clients

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelineBackends"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/reelsense/reelsense/config"
)

var (
	hugotInstance *HugotClient
	hugotOnce     sync.Once
	hugotInitErr  error
)

// HugotClient owns the process-wide ONNX runtime session and the pipelines
// running on it. Pipelines are built lazily on first use and live for the
// process lifetime; zero-shot pipelines are cached per hypothesis template
// because hugot pins the template at pipeline construction.
type HugotClient struct {
	session *hugot.Session

	mu        sync.Mutex
	embedder  *pipelines.FeatureExtractionPipeline
	zeroShots map[string]*pipelines.ZeroShotClassificationPipeline
}

func GetHugotClient() (*HugotClient, error) {
	hugotOnce.Do(func() {
		session, err := hugot.NewORTSession()
		if err != nil {
			hugotInitErr = fmt.Errorf("failed to initialize hugot session: %w", err)
			return
		}
		slog.Info("[HugotClient] ONNX runtime session initialized")
		hugotInstance = &HugotClient{
			session:   session,
			zeroShots: make(map[string]*pipelines.ZeroShotClassificationPipeline),
		}
	})
	return hugotInstance, hugotInitErr
}

// Embed runs the feature-extraction pipeline: one vector per input string.
func (h *HugotClient) Embed(texts []string) ([][]float32, error) {
	pipeline, err := h.embeddingPipeline()
	if err != nil {
		return nil, err
	}

	output, err := pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("embedding inference failed: %w", err)
	}
	return output.Embeddings, nil
}

// ClassifyAspect scores text against the candidate labels using a
// hypothesis template that names the aspect, returning the winning label
// and its confidence.
func (h *HugotClient) ClassifyAspect(text, aspect string, labels []string) (string, float64, error) {
	template := fmt.Sprintf("The sentiment towards %s is {}.", aspect)

	pipeline, err := h.zeroShotPipeline(template, labels)
	if err != nil {
		return "", 0, err
	}

	output, err := pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", 0, fmt.Errorf("zero-shot inference failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0].SortedValues) == 0 {
		return "", 0, fmt.Errorf("zero-shot pipeline returned no scores")
	}

	best := output.ClassificationOutputs[0].SortedValues[0]
	return best.Key, best.Value, nil
}

func (h *HugotClient) embeddingPipeline() (*pipelines.FeatureExtractionPipeline, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.embedder != nil {
		return h.embedder, nil
	}

	modelPath, err := ensureModel(config.EmbeddingModel())
	if err != nil {
		return nil, err
	}

	cfg := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embeddingPipeline",
		Options: []pipelineBackends.PipelineOption[*pipelines.FeatureExtractionPipeline]{
			pipelines.WithNormalization(),
		},
	}
	pipeline, err := hugot.NewPipeline(h.session, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding pipeline: %w", err)
	}

	h.embedder = pipeline
	return pipeline, nil
}

func (h *HugotClient) zeroShotPipeline(template string, labels []string) (*pipelines.ZeroShotClassificationPipeline, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if pipeline, ok := h.zeroShots[template]; ok {
		return pipeline, nil
	}

	modelPath, err := ensureModel(config.ZeroShotModel())
	if err != nil {
		return nil, err
	}

	cfg := hugot.ZeroShotClassificationConfig{
		ModelPath: modelPath,
		Name:      "zeroShotPipeline:" + template,
		Options: []pipelineBackends.PipelineOption[*pipelines.ZeroShotClassificationPipeline]{
			pipelines.WithHypothesisTemplate(template),
			pipelines.WithLabels(labels),
		},
	}
	pipeline, err := hugot.NewPipeline(h.session, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zero-shot pipeline: %w", err)
	}

	h.zeroShots[template] = pipeline
	return pipeline, nil
}

// ensureModel returns a local path for the model, downloading it on first
// use.
func ensureModel(modelID string) (string, error) {
	modelDir := config.ModelDir()
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	localPath := filepath.Join(modelDir, strings.ReplaceAll(modelID, "/", "_"))
	if _, err := os.Stat(localPath); err == nil {
		slog.Info("[HugotClient] Using existing model", slog.String("path", localPath))
		return localPath, nil
	}

	slog.Info("[HugotClient] Model not found, downloading...", slog.String("model", modelID))
	downloadedPath, err := hugot.DownloadModel(modelID, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", modelID, err)
	}
	slog.Info("[HugotClient] Model downloaded successfully", slog.String("path", downloadedPath))
	return downloadedPath, nil
}
