// Package docs Bubbly API.
//
// Сервис карты питьевых фонтанов: кластеризованная карта waypoints,
// вклад пользователей с начислением XP, профили с handle и поиском,
// стили тайлсервера для светлой и тёмной темы.
//
// Основные возможности:
// - Список и создание waypoints с данными владельца
// - Кластеры GeoJSON в bbox и зум распада кластера
// - Восстановление viewport из query string
// - Подстрочный поиск по именам waypoints
// - Профили: частичный патч, XP, флаги модератора и верификации
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
