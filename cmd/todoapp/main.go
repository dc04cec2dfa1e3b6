package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapp/internal/server"
	"todoapp/internal/service"
	"todoapp/repository/db"
	inmemory "todoapp/repository/inmemory"
)

func main() {
	log.Println("Запуск сервиса задач...")

	cfg := server.ReadConfig()

	if err := db.Migration(cfg.DBStr, cfg.MigratePath); err != nil {
		log.Println("[WARN] Не удалось применить миграции:", err)
	} else {
		log.Println("[SUCCESS] Миграции применены успешно")
	}

	var userStore service.UserStore
	var taskStore service.TaskStore
	var dbStorage *db.Storage

	dbStorage, err := db.NewStorage(cfg.DBStr)
	if err != nil {
		log.Println("[WARN] Не удалось подключиться к БД, используем память:", err)
		inmem := inmemory.NewStorage()
		userStore = inmem
		taskStore = inmem
		dbStorage = nil
	} else {
		userStore = dbStorage
		taskStore = dbStorage
	}

	accounts := service.NewAccounts(userStore)
	tasks := service.NewTasks(taskStore)

	api := server.NewTaskAPI(accounts, tasks, cfg)
	if api == nil {
		log.Fatal("[ERROR] Не удалось инициализировать API")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Сервис запущен на %s:%d", cfg.Addr, cfg.Port)
		if err := api.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Printf("[INFO] Получен сигнал %v, начинаем graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := api.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] Ошибка при graceful shutdown: %v", err)
		} else {
			log.Println("[SUCCESS] Graceful shutdown выполнен успешно")
		}

	case err := <-serverErr:
		log.Printf("[ERROR] Ошибка сервера: %v", err)
	}

	if dbStorage != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := dbStorage.Close(closeCtx); err != nil {
			log.Printf("[ERROR] Ошибка при закрытии соединения с БД: %v", err)
		}
	}

	log.Println("Сервис завершен")
}
