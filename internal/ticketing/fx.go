package ticketing

import (
	"github.com/boxofficehq/boxoffice/internal/ticketing/repository"
	"github.com/boxofficehq/boxoffice/internal/ticketing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ticketing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
