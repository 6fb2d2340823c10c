package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifedrop/lifedrop-backend/config"
	"github.com/lifedrop/lifedrop-backend/internal/identity"
	"github.com/lifedrop/lifedrop-backend/internal/payments"
	"github.com/lifedrop/lifedrop-backend/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire their dependencies from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redisClient *redis.Client
	verifier    identity.Verifier
	gateway     payments.Gateway
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetMongoClient(c *mongo.Client)          { mongoClient = c }
func GetMongoClient() *mongo.Client           { return mongoClient }
func SetMongoDB(db *mongo.Database)           { mongoDB = db }
func GetMongoDB() *mongo.Database             { return mongoDB }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetVerifier(v identity.Verifier)         { verifier = v }
func GetVerifier() identity.Verifier          { return verifier }
func SetGateway(g payments.Gateway)           { gateway = g }
func GetGateway() payments.Gateway            { return gateway }
func SetGCS(s *storage.Client)                { gcsClient = s }
func GetGCS() *storage.Client                 { return gcsClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
