package cmd

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	RabbitMQURL    string
	CatalogBaseURL string
	// JWTPublicKey is the identity provider's RSA public key, base64-encoded PEM.
	JWTPublicKey string
}
