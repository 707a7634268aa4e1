// Package apitest — fake BountyHub API для тестов.
//
// Server поднимает httptest.Server с теми же маршрутами /api/v0,
// что и настоящий API, и хранит артефакты и blob'ы в памяти.
// Вызовы API отдают pre-signed URL вида /signed/{token}, по которым
// содержимое читается (GET) и записывается (PUT) без Authorization,
// как у настоящего storage backend.
//
//	srv := apitest.NewServer(t, apitest.Config{Token: "bhv_test"})
//	srv.PutBlob("a b.txt", []byte("hello"))
//	c, _ := client.NewHTTPClient(client.ClientConfig{BaseURL: srv.URL, Token: "bhv_test"})
//
// Любой маршрут можно заставить вернуть заданный статус через SetStatus.
package apitest
