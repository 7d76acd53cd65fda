package service

import (
	"strings"

	"github.com/maheshrc27/cominiti-api/internal/transfer"
)

const defaultEmailTemplate = "brand_pitch"

var emailTemplates = map[string]string{
	"brand_pitch": `Subject: Partnership Opportunity: [Brand Name] x [Your Name]

Hi [Contact Name],

I've been using [Brand Product] for a while now and absolutely love it. I'm a content creator in the [Niche] space with [Follower Count] followers who trust my recommendations.

I'd love to discuss how we could work together to showcase [Product] to my audience. I have a few creative ideas that I think would perform really well.

Here is a link to my portfolio: [Link]

Best,
[Your Name]`,

	"collab_request": `Subject: Collab Idea: [Creator Name] x [Your Name]

Hey [Creator Name]!

I've been following your content for a while and love your recent post about [Subject]. I'm also creating content in the [Niche] space and think our audiences have a lot of crossover.

Would you be open to doing a collab? I was thinking we could [Idea].

Let me know what you think!

Cheers,
[Your Name]`,

	"rate_inquiry": `Subject: Rate Card & Media Kit Request

Hi [Name],

Thanks for reaching out! I'm definitely interested in this campaign.

Attached is my media kit which outlines my audience demographics and past campaign performance.

Regarding rates, for the deliverables mentioned in your email, my standard rate is [Amount]. I'm happy to discuss a package deal if you're looking for a longer-term partnership.

Best,
[Your Name]`,
}

// templateEmail splits a built-in template into subject and body: the first
// line is the subject, the body starts after the blank line.
func templateEmail(name string) *transfer.Email {
	tpl, ok := emailTemplates[name]
	if !ok {
		tpl = emailTemplates[defaultEmailTemplate]
	}
	lines := strings.Split(tpl, "\n")
	body := ""
	if len(lines) > 2 {
		body = strings.Join(lines[2:], "\n")
	}
	return &transfer.Email{
		Subject:    strings.TrimPrefix(lines[0], "Subject: "),
		Body:       body,
		IsTemplate: true,
	}
}
