// plcforge is the process-to-ST code generation pipeline server: it wires
// the retrieval index, LLM gateway, and orchestrator described in
// spec.md, then serves them over the HTTP transport in pkg/api.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/plcforge/plcforge/pkg/api"
	"github.com/plcforge/plcforge/pkg/config"
	"github.com/plcforge/plcforge/pkg/database"
	"github.com/plcforge/plcforge/pkg/docextract"
	"github.com/plcforge/plcforge/pkg/embedder"
	"github.com/plcforge/plcforge/pkg/engine"
	"github.com/plcforge/plcforge/pkg/llmgateway"
	"github.com/plcforge/plcforge/pkg/promptcatalog"
	"github.com/plcforge/plcforge/pkg/retrieval"
	"github.com/plcforge/plcforge/pkg/safety"
	"github.com/plcforge/plcforge/pkg/services"
	"github.com/plcforge/plcforge/pkg/versionledger"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", "./config/config.yaml"), "Path to configuration file")
	envPath := flag.String("env-file", getEnv("ENV_FILE", "./.env"), "Path to .env file")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil {
		log.Printf("Warning: could not load %s: %v", *envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", *envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	gin.SetMode(getEnv("GIN_MODE", "debug"))

	log.Printf("Starting plcforge")
	log.Printf("Config: %s", *configPath)

	ctx := context.Background()

	cfg, err := config.Initialize(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	dbConfig := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConns,
		MaxIdleConns:    cfg.Database.MaxConns / 2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
	}
	if dbConfig.MaxOpenConns == 0 {
		dbConfig.MaxOpenConns = 25
		dbConfig.MaxIdleConns = 10
	}
	if dbConfig.SSLMode == "" {
		dbConfig.SSLMode = "disable"
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Printf("Error closing database client: %v", err)
		}
	}()
	log.Println("connected to PostgreSQL, schema migrated")

	projectService := services.NewProjectService(dbClient.Client)
	stageService := services.NewStageService(dbClient.Client)
	dependencyService := services.NewDependencyService(dbClient.Client)
	codeService := services.NewCodeService(dbClient.Client)
	versionHistoryService := services.NewVersionHistoryService(dbClient.Client)
	fileService := services.NewFileService(dbClient.Client)
	manualService := services.NewSafetyManualService(dbClient.Client)
	messageService := services.NewMessageService(dbClient.Client)
	log.Println("services initialized")

	convoCfg, err := cfg.ConversationalProvider()
	if err != nil {
		log.Fatalf("Failed to load conversational provider config: %v", err)
	}
	codegenCfg, err := cfg.CodegenProvider()
	if err != nil {
		log.Fatalf("Failed to load codegen provider config: %v", err)
	}

	convoClient, err := llmgateway.NewGRPCClientFromConfig(convoCfg, nil)
	if err != nil {
		log.Fatalf("Failed to dial conversational LLM provider: %v", err)
	}
	codegenClient, err := llmgateway.NewGRPCClientFromConfig(codegenCfg, nil)
	if err != nil {
		log.Fatalf("Failed to dial codegen LLM provider: %v", err)
	}
	gateway := llmgateway.NewGateway(convoClient, codegenClient)
	log.Println("LLM gateway dialed (conversational, codegen)")

	extractor := docextract.New()
	embedClient := embedder.NewOllamaClient(cfg.Retrieval.EmbedderAddr, cfg.Retrieval.EmbedderModel, cfg.Retrieval.EmbeddingDim)
	retriever, err := retrieval.New(cfg.Retrieval.QdrantAddr, extractor, embedClient, cfg.Retrieval.ChunkWords, cfg.Retrieval.ChunkOverlapWords)
	if err != nil {
		log.Fatalf("Failed to open retrieval index: %v", err)
	}
	log.Println("retrieval index connected")

	prompts := promptcatalog.New(cfg.PromptCatalog.Dir)

	ledger := versionledger.New(versionHistoryService)

	// Stage validation, generation, and the safety interrogator are the
	// pipeline's quota-heavy operations (spec.md: "one for conversational
	// agents, one for code generation and stage validation, higher quota"),
	// so the Engine is wired against the codegen client; the conversational
	// client stays reserved on the gateway for a future chat surface.
	eng := engine.New(
		projectService,
		stageService,
		codeService,
		dependencyService,
		ledger,
		retriever,
		gateway.Codegen(),
		safety.PerProject,
		time.Now,
		slog.Default(),
	)

	server := api.NewServer(eng, dbClient, projectService, fileService, manualService, messageService, prompts)
	router := server.Router()

	log.Printf("HTTP server listening on :%s", httpPort)
	if err := router.Run(":" + httpPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
