// Package advisor is the AI chat on top of an analysis: a Gemini session
// briefed with the full report that answers follow-up questions about the
// two strategies.
package advisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemPrompt = `你是一位投資組合分析顧問。以下是兩個台股投資組合策略的完整回測與前向測試報告,
請根據報告內容回答使用者的問題。回答使用繁體中文,引用數字時以報告為準,
不要編造報告中沒有的數據,也不要提供買賣的保證。`

// Advisor is a chat session that has read the analysis report.
type Advisor struct {
	w      io.Writer
	r      *bufio.Reader
	model  string
	config *genai.GenerateContentConfig
	chat   *genai.Chat
}

// New creates an Advisor briefed with the report markdown. It writes its
// answers to w and reads questions from r.
func New(w io.Writer, r io.Reader, report string) *Advisor {
	return &Advisor{
		w:     w,
		r:     bufio.NewReader(r),
		model: defaultModel,
		config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt + "\n\n" + report}},
			},
		},
	}
}

// Start creates the underlying Gemini chat.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.model, a.config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the answer text.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "advisor> "

// Run starts the interactive REPL session. Initial prompts are asked first,
// then questions are read from the input until 'bye' or EOF.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "歡迎使用投資組合分析顧問,輸入 'bye' 離開。")

	// blank initial prompts would only echo an empty question
	queue := make([]string, 0, len(prompts))
	for _, p := range prompts {
		if strings.TrimSpace(p) != "" {
			queue = append(queue, p)
		}
	}

	// REPL loop
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush the initial prompts first, then ask the user.
		if len(queue) > 0 {
			input, queue = queue[0], queue[1:]
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
