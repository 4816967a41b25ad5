package htmltext

import (
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
)

// Markdown converts rendered post content to CommonMark.
type Markdown struct {
	mdc *converter.Converter
}

func NewMarkdown() *Markdown {
	mdc := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	// WordPress wraps embeds in <figure class="wp-block-embed">, keep only the link
	mdc.Register.RendererFor("figure", converter.TagTypeBlock, renderEmbed, converter.PriorityEarly)

	return &Markdown{mdc: mdc}
}

func (m *Markdown) Convert(ctx context.Context, content string) (string, error) {
	md, err := m.mdc.ConvertString(content, converter.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("can't convert to markdown: %w", err)
	}
	return md, nil
}

// renderEmbed renders a WordPress embed block as a bare link to the embedded URL.
func renderEmbed(ctx converter.Context, w converter.Writer, node *html.Node) converter.RenderStatus {
	if !dom.HasClass(node, "wp-block-embed") {
		return converter.RenderTryNext
	}

	wrapper := dom.FindFirstNode(node, func(node *html.Node) bool {
		return dom.HasClass(node, "wp-block-embed__wrapper")
	})
	if wrapper == nil {
		return converter.RenderTryNext
	}
	src := strings.TrimSpace(dom.CollectText(wrapper))
	if src == "" {
		return converter.RenderTryNext
	}

	w.WriteString("\n\n<" + src + ">\n\n")
	return converter.RenderSuccess
}
