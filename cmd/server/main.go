package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quotekit/backend/internal/config"
	"github.com/quotekit/backend/internal/handler"
	"github.com/quotekit/backend/internal/logging"
	"github.com/quotekit/backend/internal/repository"
	"github.com/quotekit/backend/internal/service"
)

// インポートの上限サイズ
const maxBodyBytes = 8 << 20

func main() {
	cfg := config.Load()
	logging.Setup()

	ctx := context.Background()
	repo, closeRepo, err := repository.Open(ctx, repository.Backend{
		Kind:        cfg.StoreBackend,
		StateDir:    cfg.StateDir,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		logging.Fatal("failed to open settings store", "backend", cfg.StoreBackend, "error", err)
	}
	defer closeRepo()

	ws, err := service.OpenWorkspace(ctx, repo)
	if err != nil {
		logging.Fatal("failed to load settings", "error", err)
	}
	catalogService := service.NewCatalogService(ws)
	quoteService := service.NewQuoteService(ws)
	transferService := service.NewTransferService(ws)

	h := handler.New(repo, cfg.FrontendURL)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	transferHandler := handler.NewTransferHandler(transferService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// 料金設定・カタログ・賃金
	mux.HandleFunc("GET /api/settings", catalogHandler.GetSettings)
	mux.HandleFunc("PATCH /api/settings", catalogHandler.PatchSettings)
	mux.HandleFunc("DELETE /api/settings", catalogHandler.ResetSettings)
	mux.HandleFunc("POST /api/items", catalogHandler.CreateItem)
	mux.HandleFunc("PUT /api/items/{id}", catalogHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", catalogHandler.DeleteItem)
	mux.HandleFunc("POST /api/wages", catalogHandler.CreateWage)
	mux.HandleFunc("PUT /api/wages/{index}", catalogHandler.UpdateWage)
	mux.HandleFunc("DELETE /api/wages/{index}", catalogHandler.DeleteWage)

	// 作業中の見積
	mux.HandleFunc("GET /api/quote", quoteHandler.Get)
	mux.HandleFunc("PUT /api/quote", quoteHandler.Update)
	mux.HandleFunc("DELETE /api/quote", quoteHandler.Clear)
	mux.HandleFunc("POST /api/quote/items", quoteHandler.AddItem)
	mux.HandleFunc("PUT /api/quote/items/{itemId}", quoteHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/quote/items/{itemId}", quoteHandler.RemoveItem)
	mux.HandleFunc("GET /api/quote/totals", quoteHandler.Totals)
	mux.HandleFunc("GET /api/quote/summary", transferHandler.Summary)
	mux.HandleFunc("GET /api/quote/workbook", transferHandler.Workbook)
	mux.HandleFunc("POST /api/quote/save", quoteHandler.Save)

	// 保存済み見積
	mux.HandleFunc("GET /api/saved-quotes", quoteHandler.ListSaved)
	mux.HandleFunc("POST /api/saved-quotes/{id}/load", quoteHandler.LoadSaved)
	mux.HandleFunc("DELETE /api/saved-quotes/{id}", quoteHandler.DeleteSaved)
	mux.HandleFunc("GET /api/saved-quotes/{id}/summary", transferHandler.SavedSummary)

	// エクスポート／インポート
	mux.HandleFunc("GET /api/export/settings", transferHandler.ExportSettings)
	mux.HandleFunc("GET /api/export/saved-quotes", transferHandler.ExportSavedQuotes)
	mux.HandleFunc("POST /api/import/settings", transferHandler.ImportSettings)
	mux.HandleFunc("POST /api/import/saved-quotes", transferHandler.ImportSavedQuotes)

	var root http.Handler = mux
	root = handler.MaxBodySize(maxBodyBytes)(root)
	root = h.CORS(root)
	root = handler.SecurityHeaders(root)
	root = handler.RequestLogger(root)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      root,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
