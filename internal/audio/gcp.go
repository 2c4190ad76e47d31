package audio

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// DefaultVoice is a Mandarin voice available in every region.
const DefaultVoice = "cmn-CN-Wavenet-C"

// GCP synthesises speech with Google Cloud Text-to-Speech.
// Credentials come from the environment (GOOGLE_APPLICATION_CREDENTIALS).
type GCP struct {
	client *texttospeech.Client
	voice  *texttospeechpb.VoiceSelectionParams
}

// NewGCP dials the Text-to-Speech API. voice defaults to DefaultVoice.
func NewGCP(ctx context.Context, voice string) (*GCP, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return &GCP{
		client: client,
		voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "cmn-CN",
			Name:         voice,
		},
	}, nil
}

// Close releases the API connection.
func (g *GCP) Close() error { return g.client.Close() }

// Synthesize returns MP3 audio for text.
func (g *GCP) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: g.voice,
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  0.8,
		},
	}
	resp, err := g.client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return nil, err
	}
	return resp.AudioContent, nil
}
