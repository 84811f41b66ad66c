package main

// @title Gen-UI API Gateway
// @version 1.0
// @description Conversational gateway answering weather, time, news and free-form chat messages.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /
// @schemes http
import (
	_ "github.com/sfy45/Gen-UI/docs"
	protocol "github.com/sfy45/Gen-UI/protocal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file loaded, using process environment")
	}

	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
