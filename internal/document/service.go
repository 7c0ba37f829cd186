package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/storage"
	"gorm.io/gorm"
)

const defaultContentType = "application/octet-stream"

type DocumentService struct {
	db                 *gorm.DB
	documentRepository *DocumentRepository
	store              storage.Store
	now                func() time.Time
}

func NewDocumentService(db *gorm.DB, documentRepository *DocumentRepository, store storage.Store) *DocumentService {
	return &DocumentService{
		db:                 db,
		documentRepository: documentRepository,
		store:              store,
		now:                time.Now,
	}
}

func (s *DocumentService) List(ctx context.Context) ([]DocumentResponse, error) {
	documents, err := s.documentRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make([]DocumentResponse, 0, len(documents))
	for i := range documents {
		out = append(out, toDocumentResponse(&documents[i]))
	}
	return out, nil
}

func (s *DocumentService) load(ctx context.Context, db *gorm.DB, id uint32) (*model.Document, error) {
	doc, err := s.documentRepository.FindByID(ctx, db, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("document id=%d: %w", id, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint32) (*DocumentResponse, error) {
	doc, err := s.load(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

// Upload stores the bytes under a generated key, then records the metadata.
// A failed insert removes the stored object again.
func (s *DocumentService) Upload(ctx context.Context, memberID uint32, upload Upload, r io.Reader) (*DocumentResponse, error) {
	log := logger.FromContext(ctx)

	if upload.Size <= 0 {
		return nil, fmt.Errorf("upload %q: %w", upload.FileName, ErrEmptyFile)
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	key := storage.GenerateKey(upload.FileName)
	if err := s.store.Put(ctx, key, r, upload.Size, contentType); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	doc := &model.Document{
		Title:        upload.Title,
		FileName:     storage.TruncateName(storage.BaseName(upload.FileName), model.MaxDocumentFileNameBytes),
		ContentType:  contentType,
		StoragePath:  key,
		Size:         upload.Size,
		UploadedAt:   s.now().UTC(),
		UploadedByID: memberID,
	}
	if err := s.documentRepository.Create(ctx, s.db, doc); err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Error("Failed to remove orphaned document object", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	log.Info("Document uploaded", "document_id", doc.ID, "member_id", memberID, "size", doc.Size)
	resp := toDocumentResponse(doc)
	return &resp, nil
}

// Open returns the document metadata and a reader over its bytes. The caller closes the reader.
func (s *DocumentService) Open(ctx context.Context, id uint32) (*DocumentResponse, io.ReadCloser, error) {
	doc, err := s.load(ctx, s.db, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("document id=%d key=%s: %w", id, doc.StoragePath, ErrContentMissing)
		}
		return nil, nil, fmt.Errorf("open document: %w", err)
	}

	resp := toDocumentResponse(doc)
	return &resp, rc, nil
}

// Delete removes the row and the stored object together. A missing object does not block the delete.
func (s *DocumentService) Delete(ctx context.Context, id, memberID uint32, isAdmin bool) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		doc, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if doc.UploadedByID != memberID && !isAdmin {
			return fmt.Errorf("document id=%d member id=%d: %w", id, memberID, ErrDocumentForbidden)
		}

		if err := s.documentRepository.HardDelete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("delete document object: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Document deleted", "document_id", id, "member_id", memberID)
	return nil
}
