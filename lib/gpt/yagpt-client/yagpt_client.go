package yagptclient

import (
	"context"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
)

type Provider interface {
	GenerateByPromptAndText(ctx context.Context, prompt, text string) (generatedText string, err error)
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
}

func NewClient(token, catalog string) Provider {
	return impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(token),
		catalogID: catalog,
	}
}

func (i impl) GenerateByPromptAndText(ctx context.Context, prompt, text string) (string, error) {
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: 0.1,
			MaxTokens:   200,
		},
		Messages: []yandexgptclient.YandexGPTMessage{
			{
				Role: yandexgptclient.YandexGPTMessageRoleSystem,
				Text: prompt,
			},
			{
				Role: yandexgptclient.YandexGPTMessageRoleUser,
				Text: text,
			},
		},
	}

	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		return "", errors.Wrap(err, "YandexGPT completion request failed")
	}
	if len(response.Result.Alternatives) == 0 {
		return "", errors.New("YandexGPT returned no alternatives")
	}
	return response.Result.Alternatives[0].Message.Text, nil
}
