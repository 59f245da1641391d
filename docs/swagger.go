package docs

// @title           Kart Lap Times API
// @version         1.0
// @description     Read-only JSON view of the lap log kept in the visitor session, plus service health.

// @host      localhost:8080
// @BasePath  /
