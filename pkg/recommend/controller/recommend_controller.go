package controller

import "github.com/labstack/echo/v4"

type RecommendController interface {
	Recommend(c echo.Context) error
	RecommendJSON(c echo.Context) error
	Regions(c echo.Context) error
	Crops(c echo.Context) error
	Zones(c echo.Context) error
	Rules(c echo.Context) error
}
