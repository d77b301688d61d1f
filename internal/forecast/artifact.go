package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/storage"
)

// Artifact is the persisted form of a fitted model. One artifact exists per
// product and every fit overwrites it.
type Artifact struct {
	ProductID int64     `json:"product_id"`
	Order     Order     `json:"order"`
	Phi       float64   `json:"ar_l1"`
	Theta     float64   `json:"ma_l1"`
	Sigma2    float64   `json:"sigma2"`
	LogLik    float64   `json:"log_likelihood"`
	AIC       float64   `json:"aic"`
	NObs      int       `json:"nobs"`
	LastDay   time.Time `json:"last_day"`
	FittedAt  time.Time `json:"fitted_at"`
}

// ArtifactStore persists fitted models keyed by product id.
type ArtifactStore interface {
	Save(ctx context.Context, a Artifact) error
	// Load returns domain.ErrNotFound when the product has no artifact.
	Load(ctx context.Context, productID int64) (Artifact, error)
}

// ObjectArtifactStore keeps artifacts as JSON objects in an ObjectStorage
// backend (local directory or S3 bucket).
type ObjectArtifactStore struct {
	objects storage.ObjectStorage
}

func NewObjectArtifactStore(objects storage.ObjectStorage) *ObjectArtifactStore {
	return &ObjectArtifactStore{objects: objects}
}

const artifactPrefix = "product_"

// ArtifactKey is the object name of a product's artifact.
func ArtifactKey(productID int64) string {
	return fmt.Sprintf("%s%d.json", artifactPrefix, productID)
}

func (s *ObjectArtifactStore) Save(ctx context.Context, a Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact for product %d: %w", a.ProductID, err)
	}
	if err := s.objects.PutObject(ctx, ArtifactKey(a.ProductID), data); err != nil {
		return fmt.Errorf("save artifact for product %d: %w", a.ProductID, err)
	}
	return nil
}

func (s *ObjectArtifactStore) Load(ctx context.Context, productID int64) (Artifact, error) {
	data, err := s.objects.GetObject(ctx, ArtifactKey(productID))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return Artifact{}, domain.ErrNotFound
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("load artifact for product %d: %w", productID, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, fmt.Errorf("decode artifact for product %d: %w", productID, err)
	}
	return a, nil
}

// List returns every stored artifact ordered by product id.
func (s *ObjectArtifactStore) List(ctx context.Context) ([]Artifact, error) {
	objects, err := s.objects.ListObjects(ctx, artifactPrefix)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	artifacts := make([]Artifact, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		data, err := s.objects.GetObject(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("load artifact %s: %w", obj.Key, err)
		}
		var a Artifact
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode artifact %s: %w", obj.Key, err)
		}
		artifacts = append(artifacts, a)
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].ProductID < artifacts[j].ProductID })
	return artifacts, nil
}

func artifactFromModel(productID int64, m *arimaModel, lastDay, fittedAt time.Time) Artifact {
	return Artifact{
		ProductID: productID,
		Order:     DefaultOrder,
		Phi:       m.Phi,
		Theta:     m.Theta,
		Sigma2:    m.Sigma2,
		LogLik:    m.LogLik,
		AIC:       m.AIC,
		NObs:      m.NObs,
		LastDay:   lastDay,
		FittedAt:  fittedAt,
	}
}
