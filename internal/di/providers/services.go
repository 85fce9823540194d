package providers

import (
	"github.com/samber/do/v2"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/config"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/service"
	"github.com/traveljournal/journal-server/internal/validation"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	issuer := do.MustInvoke[auth.Issuer](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, issuer, validator, log.Logger), nil
}

// ProvideUserService provides the profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideEntryService provides the entry service, indexing changes for search.
func ProvideEntryService(i do.Injector) (*service.EntryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewEntryService(storeHandle.Store, validator, log.Logger)
	svc.SetIndexer(do.MustInvoke[*service.SearchService](i))
	return svc, nil
}

// ProvidePhotoService provides the photo service. Storage error text is
// only shown to clients outside production.
func ProvidePhotoService(i do.Injector) (*service.PhotoService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPhotoService(storeHandle.Store, validator, log.Logger, !cfg.App.IsProduction()), nil
}

// ProvideTagService provides the tag service, indexing changes for search.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewTagService(storeHandle.Store, validator, log.Logger)
	svc.SetIndexer(do.MustInvoke[*service.SearchService](i))
	return svc, nil
}
