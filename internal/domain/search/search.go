package search

import (
	"context"
	"errors"
	"path"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/playden-lab/backend/pkg/logger"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

const (
	CommunityDoc = "community"
	GameDoc      = "game"
)

type CommunityData struct {
	Handle      string
	DisplayName string
	Description string
}

type GameData struct {
	Name    string
	Summary string
	Genres  []string
}

type Searcher interface {
	IndexCommunity(ctx context.Context, id int64, data CommunityData) error
	DeleteCommunity(ctx context.Context, id int64) error
	SearchCommunity(ctx context.Context, query string, offset, limit int) ([]int64, error)

	IndexGame(ctx context.Context, id int64, data GameData) error
	SearchGame(ctx context.Context, query string, offset, limit int) ([]int64, error)

	Close()
}

type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	indexes  *xsync.MapOf[string, bleve.Index]
	mutex    sync.Mutex
}

// NewBleveIndex opens one index per document kind under the configured
// directory. Indexes live in memory only when no directory is configured.
func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).Search.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) IndexCommunity(ctx context.Context, id int64, data CommunityData) error {
	return i.index(CommunityDoc, id, data)
}

func (i *bleveIndex) DeleteCommunity(ctx context.Context, id int64) error {
	return i.delete(CommunityDoc, id)
}

func (i *bleveIndex) SearchCommunity(ctx context.Context, query string, offset, limit int) ([]int64, error) {
	return i.search(CommunityDoc, query, offset, limit)
}

func (i *bleveIndex) IndexGame(ctx context.Context, id int64, data GameData) error {
	return i.index(GameDoc, id, data)
}

func (i *bleveIndex) SearchGame(ctx context.Context, query string, offset, limit int) ([]int64, error) {
	return i.search(GameDoc, query, offset, limit)
}

func (i *bleveIndex) index(document string, id int64, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	docID := strconv.FormatInt(id, 10)
	record, err := index.Document(docID)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(docID); err != nil {
			return err
		}
	}

	return index.Index(docID, data)
}

func (i *bleveIndex) delete(document string, id int64) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	return index.Delete(strconv.FormatInt(id, 10))
}

func (i *bleveIndex) search(document, query string, offset, limit int) ([]int64, error) {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, offset, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []int64{}
	for _, match := range searchResults.Hits {
		id, err := strconv.ParseInt(match.ID, 10, 64)
		if err != nil {
			i.logger.Warnf("Invalid document id %s in %s index", match.ID, document)
			continue
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()

	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	i.logger.Infof("A new document index is added: %s", document)

	var index bleve.Index
	var err error
	if i.indexDir == "" {
		index, err = bleve.NewMemOnly(bleve.NewIndexMapping())
	} else {
		indexPath := path.Join(i.indexDir, document)
		index, err = bleve.New(indexPath, bleve.NewIndexMapping())
		if errors.Is(err, bleve.ErrorIndexPathExists) {
			index, err = bleve.Open(indexPath)
		}
	}

	if err != nil {
		return nil, err
	}

	i.indexes.Store(document, index)
	return index, nil
}
