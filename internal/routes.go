package internal

import (
	"net/http"
	"sightd/internal/controllers"
	"sightd/internal/providers"
)

func InitRoutes(sightController *controllers.SightController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/sights", http.HandlerFunc(sightController.ListSights))
	routers.Post("/sights", http.HandlerFunc(sightController.AddSight))
	routers.Get("/sight", http.HandlerFunc(sightController.GetSight))
	routers.Delete("/sight", http.HandlerFunc(sightController.DeleteSight))
	routers.Get("/kinds", http.HandlerFunc(sightController.GetKinds))
	routers.Get("/map", http.HandlerFunc(sightController.MapSights))
	routers.Post("/photos", http.HandlerFunc(sightController.UploadPhoto))
	routers.Get("/photo", http.HandlerFunc(sightController.GetPhoto))
	return routers
}
