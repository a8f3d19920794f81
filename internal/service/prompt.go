package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"mawja-backend/internal/model"
	"mawja-backend/internal/session"
)

// contentExcerptLimit caps how much raw document text is embedded in the
// system prompt.
const contentExcerptLimit = 1000

// Per-document-type assistant instructions. The assistant answers in the
// show's language and is steered toward the kind of writing each document
// holds.
const (
	conceptInstructions = `أنت مساعد إبداعي متخصص في تطوير أفكار حلقات البودكاست.
ساعد المستخدم في صياغة فكرة الحلقة وزواياها الرئيسية واقتراح عناوين جذابة.
اجعل إجاباتك موجزة وقابلة للإدراج مباشرة في المستند.`

	preparationInstructions = `أنت مساعد بحث وإعداد لحلقات البودكاست.
ساعد المستخدم في جمع النقاط الأساسية والأسئلة والمراجع وهيكلة مادة الحلقة.
قدّم المحتوى في نقاط واضحة قابلة للإدراج مباشرة في المستند.`

	scriptInstructions = `أنت كاتب نصوص بودكاست محترف.
ساعد المستخدم في كتابة حوارات وفقرات بأسلوب حديث طبيعي ومناسب للإلقاء الصوتي.
عند كتابة حوار، استخدم صيغة "المتحدث: النص".`

	defaultInstructions = `أنت مساعد كتابة لصنّاع البودكاست.
ساعد المستخدم في تطوير محتوى حلقته بما يناسب هوية البرنامج.`
)

func instructionsFor(documentType string) string {
	switch documentType {
	case model.SectionConcept:
		return conceptInstructions
	case model.SectionPreparation:
		return preparationInstructions
	case model.SectionScript:
		return scriptInstructions
	default:
		return defaultInstructions
	}
}

// buildSystemPrompt assembles the single system message: instructions for
// the document type plus a context block describing the document and the
// show.
func buildSystemPrompt(req model.ChatRequest) string {
	var b strings.Builder

	b.WriteString(instructionsFor(req.Document.Type))
	b.WriteString("\n\n--- سياق العمل ---\n")

	fmt.Fprintf(&b, "نوع المستند: %s\n", session.SectionLabel(req.Document.Type))

	if req.Document.Content != "" {
		fmt.Fprintf(&b, "محتوى المستند الحالي:\n%s\n", excerpt(req.Document.Content, contentExcerptLimit))
	}

	if len(req.Document.Sections) > 0 {
		b.WriteString("أقسام المستند:\n")
		for key, content := range req.Document.Sections {
			fmt.Fprintf(&b, "- %s: %d حرف\n", session.SectionLabel(key), utf8.RuneCountInString(content))
		}
	}

	writeMeta(&b, req.Podcast, req.Episode)

	return b.String()
}

func writeMeta(b *strings.Builder, podcast model.PodcastMeta, episode model.EpisodeMeta) {
	b.WriteString("--- معلومات البرنامج ---\n")

	writeField(b, "اسم البرنامج", podcast.ShowName)
	writeField(b, "النبرة", podcast.Tone)
	if len(podcast.Styles) > 0 {
		writeField(b, "الأسلوب", strings.Join(podcast.Styles, "، "))
	}
	writeField(b, "الجمهور المستهدف", podcast.Audience)
	writeField(b, "هوية العلامة", podcast.BrandVoice)
	writeField(b, "اسم المقدم", podcast.HostName)

	writeField(b, "نوع المحتوى", episode.ContentType)
	writeField(b, "مدة الحلقة", episode.Duration)
	writeField(b, "أهداف الحلقة", episode.Goals)
	writeField(b, "معايير النجاح", episode.SuccessCriteria)
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// excerpt returns the first limit runes of text with an ellipsis marker
// when truncated.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
