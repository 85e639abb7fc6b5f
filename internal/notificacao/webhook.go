package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// EnviarWebhookAlerta avisa um sistema externo sobre a conclusão ou
// arquivamento de um processo. Best effort: falhas só vão para o log.
func EnviarWebhookAlerta(processoID uint, status string) {
	url := os.Getenv("WEBHOOK_ALERTA_URL")
	if url == "" {
		return
	}

	payload := map[string]string{
		"mensagem":   "Alerta: processo mudou para status terminal",
		"processoId": fmt.Sprint(processoID),
		"status":     status,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
