package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"sightd/internal/models"
	"sightd/internal/providers"
	"sightd/internal/services"
	"sightd/internal/store"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type SightController struct {
	logger  providers.Logger
	service services.SightServiceInterface
	photos  services.PhotoServiceInterface
	cache   providers.CacheProviderInterface

	// generation changes on every invalidation; a response computed under an
	// older generation is not cached.
	cacheMu    sync.Mutex
	generation uint64
}

func NewSightController(logger providers.Logger, service services.SightServiceInterface, photos services.PhotoServiceInterface, cache providers.CacheProviderInterface) *SightController {
	return &SightController{
		logger:  logger,
		service: service,
		photos:  photos,
		cache:   cache,
	}
}

type errorsResponse struct {
	Errors []string `json:"errors"`
	Fields []string `json:"fields,omitempty"`
}

type photoResponse struct {
	ImageName string `json:"imageName"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// filterParams reads kind and q, folding every "all" label into one cache key.
func filterParams(r *http.Request) (kind, keyword, key string) {
	kind = strings.TrimSpace(r.URL.Query().Get("kind"))
	keyword = strings.TrimSpace(r.URL.Query().Get("q"))
	keyKind := kind
	if services.IsAllKind(kind) {
		keyKind = services.KindAll
	}
	return kind, keyword, keyKind + ":" + keyword
}

func getID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (sc *SightController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := sc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	generation := sc.currentGeneration()
	result, err := compute()
	if err != nil {
		sc.storageFailure(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sc.cacheMu.Lock()
	if sc.generation == generation {
		sc.cache.Set(cacheKey, gson)
	}
	sc.cacheMu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (sc *SightController) currentGeneration() uint64 {
	sc.cacheMu.Lock()
	defer sc.cacheMu.Unlock()
	return sc.generation
}

// invalidate drops cached responses after the document changed.
func (sc *SightController) invalidate() {
	sc.cacheMu.Lock()
	defer sc.cacheMu.Unlock()
	sc.generation++
	sc.cache.Clear()
}

func (sc *SightController) storageFailure(w http.ResponseWriter, r *http.Request, err error) {
	sc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	var serr *store.StorageError
	if errors.As(err, &serr) {
		http.Error(w, "Sight storage unavailable", http.StatusInternalServerError)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (sc *SightController) ListSights(w http.ResponseWriter, r *http.Request) {
	kind, keyword, key := filterParams(r)
	sc.serveFromCacheOrCompute(w, r, "sights:"+key, func() (any, error) {
		sights, err := sc.service.List(kind, keyword)
		if sights == nil && err == nil {
			sights = []*models.Sight{}
		}
		return sights, err
	})
}

func (sc *SightController) MapSights(w http.ResponseWriter, r *http.Request) {
	kind, keyword, key := filterParams(r)
	sc.serveFromCacheOrCompute(w, r, "map:"+key, func() (any, error) {
		return sc.service.GeoJSON(kind, keyword)
	})
}

func (sc *SightController) GetKinds(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, r, "kinds", func() (any, error) {
		return sc.service.Kinds()
	})
}

func (sc *SightController) GetSight(w http.ResponseWriter, r *http.Request) {
	id, ok := getID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	sight, err := sc.service.Get(id)
	if errors.Is(err, services.ErrSightNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		sc.storageFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sight)
}

func (sc *SightController) AddSight(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var form models.SightForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sight, err := sc.service.Add(&form)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		sc.logger.Debugf(providers.TypePost, "Rejected sight: %s", verr)
		writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: verr.Messages, Fields: verr.Fields})
		return
	}
	if err != nil {
		sc.storageFailure(w, r, err)
		return
	}

	sc.invalidate()
	writeJSON(w, http.StatusCreated, sight)
}

func (sc *SightController) DeleteSight(w http.ResponseWriter, r *http.Request) {
	id, ok := getID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	found, err := sc.service.Delete(id)
	if err != nil {
		sc.storageFailure(w, r, err)
		return
	}
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	sc.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (sc *SightController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	name, err := sc.photos.Save(r.Body)
	if errors.Is(err, services.ErrInvalidPhoto) {
		writeJSON(w, http.StatusBadRequest, errorsResponse{Errors: []string{err.Error()}})
		return
	}
	if err != nil {
		sc.storageFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, photoResponse{ImageName: name})
}

func (sc *SightController) GetPhoto(w http.ResponseWriter, r *http.Request) {
	path, err := sc.photos.Resolve(r.URL.Query().Get("name"))
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}
