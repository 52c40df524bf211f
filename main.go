package main

import (
	"log"
	"net/http"
	"os"

	"github.com/shopapp-dev/shopapp/app/cmd"
	"github.com/shopapp-dev/shopapp/app/configs"
	"github.com/shopapp-dev/shopapp/app/routes"
	"github.com/shopapp-dev/shopapp/app/utils/sessions"
)

func main() {

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	if err := sessions.InitStore(); err != nil {
		log.Fatalf("Session store init failed: %v", err)
	}
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(db)

	server := http.Server{
		Addr:    configs.LoadENV.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
