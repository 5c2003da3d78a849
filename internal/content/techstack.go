package content

import (
	"regexp"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

type signature struct {
	name    string
	pattern *regexp.Regexp
}

func sig(name, pattern string) signature {
	return signature{name: name, pattern: regexp.MustCompile(`(?i)` + pattern)}
}

var (
	cmsSignatures = []signature{
		sig("WordPress", `wp-content|wordpress|uploads/20\d{2}`),
		sig("Shopify", `shopify|cdn\.shopify\.com`),
		sig("Wix", `wixpress|wixapps`),
		sig("Webflow", `webflow|wf-stage`),
		sig("Squarespace", `squarespace|static\d*\.squarespace`),
		sig("Drupal", `drupal|sites/default`),
		sig("Joomla", `joomla|components/com_`),
	}
	frameworkSignatures = []signature{
		sig("React", `react|__react|reactjs|webpack`),
		sig("Vue.js", `vue|__vue|\.vue\.js`),
		sig("Next.js", `nextjs|next\.js|_next/`),
		sig("Gatsby", `gatsby|__gatsby`),
		sig("Tailwind", `tailwind|tailwindcss`),
		sig("Bootstrap", `bootstrap[^v]|bootstrap\.`),
		sig("jQuery", `jquery|\$\.ajax`),
	}
	analyticsSignatures = []signature{
		sig("Google Analytics", `google-analytics|gtag|ga\(`),
		sig("Google Tag Manager", `googletagmanager|gtm\(`),
		sig("Facebook Pixel", `facebook\.com/tr\?|fbq\(`),
		sig("Hotjar", `hotjar|hj\(`),
		sig("HubSpot", `hubspot|hsforms`),
		sig("Intercom", `intercom`),
	}
	hostingSignatures = []signature{
		sig("Cloudflare", `cloudflare|cdnjs\.cloudflare`),
		sig("Vercel", `vercel|_vercel`),
		sig("Netlify", `netlify|_netlify`),
		sig("AWS", `amazonaws|s3\.`),
		sig("Google Cloud", `googleapis|storage\.googleapis`),
	}
)

// DetectTechStack reports the products whose signature appears in html or in
// pageURL. A category can match several products.
func DetectTechStack(html, pageURL string) model.TechDetection {
	return model.TechDetection{
		CMS:        match(cmsSignatures, html, pageURL),
		Frameworks: match(frameworkSignatures, html, pageURL),
		Analytics:  match(analyticsSignatures, html, pageURL),
		Hosting:    match(hostingSignatures, html, pageURL),
	}
}

func match(sigs []signature, html, pageURL string) []string {
	found := []string{}
	for _, s := range sigs {
		if s.pattern.MatchString(html) || s.pattern.MatchString(pageURL) {
			found = append(found, s.name)
		}
	}
	return found
}
