package main

import (
	"bufio"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"casino-server/internal/config"
	"casino-server/internal/jwt"
	"casino-server/internal/util"
)

var command = flag.String("c", "token", "specifies the command (token, keys)")
var subject = flag.String("sub", "", "the player id the token is issued to")
var ttl = flag.Duration("ttl", 24*time.Hour, "how long the token is valid for, 0 never expires")

func main() {
	flag.Parse()

	switch *command {
	case "token":
		if err := jwt.LoadKeys(); err != nil {
			logrus.WithError(err).Fatal("could not load keys")
		}

		sub := *subject
		if sub == "" {
			var err error
			if sub, err = getInput(fmt.Sprintf("Player ID [%s]", defaultSubject())); err != nil {
				logrus.WithError(err).Fatal("could not get answer")
			}

			if sub == "" {
				sub = defaultSubject()
			}
		}

		token, err := jwt.Sign(sub, *ttl)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(token)
	case "keys":
		cfg := config.Instance().JWT
		if err := writeKeys(cfg.PrivateKey, cfg.PublicKey); err != nil {
			logrus.WithError(err).Fatal("could not write keys")
		}

		fmt.Printf("Wrote %s and %s\n", cfg.PrivateKey, cfg.PublicKey)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func defaultSubject() string {
	return strings.ReplaceAll(strings.ToLower(util.GetRandomName()), " ", "-")
}

func writeKeys(privatePath, publicPath string) error {
	if _, err := os.Stat(privatePath); err == nil {
		answer, err := getInput(fmt.Sprintf("%s exists, overwrite (y/N)", privatePath))
		if err != nil {
			return err
		}

		if answer == "" || strings.ToLower(answer)[0] != 'y' {
			return fmt.Errorf("refusing to overwrite %s", privatePath)
		}
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return err
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return err
	}

	for _, path := range []string{privatePath, publicPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return err
		}
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(privatePath, privPEM, 0600); err != nil {
		return err
	}

	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return os.WriteFile(publicPath, pubPEM, 0644)
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
