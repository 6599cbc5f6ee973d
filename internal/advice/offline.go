package advice

import (
	"context"
	"strings"
)

// OfflineProvider is the terminal fallback: a small built-in knowledge
// base of common Indian legal procedures. It never fails, so a chain
// ending in it always produces an answer.
type OfflineProvider struct{}

func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

func (p *OfflineProvider) Name() string {
	return "offline"
}

type kbEntry struct {
	keywords []string
	answer   string
}

var knowledgeBase = []kbEntry{
	{
		keywords: []string{"fir", "theft", "stolen", "robbery", "police complaint"},
		answer: "To report a crime you can file a First Information Report (FIR) at the police station " +
			"with jurisdiction over the place of the incident. Under Section 154 CrPC the police are " +
			"obliged to register an FIR for a cognizable offence and give you a free copy. If the " +
			"station refuses, you may send your complaint in writing to the Superintendent of Police " +
			"or approach a Magistrate under Section 156(3) CrPC. Note the date, time, and place of the " +
			"incident and carry identification. For complex matters consult a lawyer or your nearest " +
			"District Legal Services Authority for free legal aid.",
	},
	{
		keywords: []string{"rti", "information", "public authority"},
		answer: "Under the Right to Information Act, 2005 any citizen may request information from a " +
			"public authority. Submit your application to the Public Information Officer with the " +
			"prescribed fee (Rs. 10 for central authorities); the authority must respond within 30 " +
			"days. If the reply is unsatisfactory you may file a first appeal with the appellate " +
			"officer within 30 days, and a second appeal with the Information Commission within 90 " +
			"days. Keep copies of the application and proof of submission.",
	},
	{
		keywords: []string{"evict", "landlord", "tenant", "rent"},
		answer: "Tenancy disputes are governed by the rent control law of your state. A landlord " +
			"generally cannot evict a tenant without a court order and proper written notice; " +
			"self-help eviction (changing locks, cutting utilities) is illegal. Check your rent " +
			"agreement for the notice period and approach the rent controller or civil court if " +
			"eviction is attempted without due process. Document all payments and correspondence, and " +
			"consult a lawyer before vacating.",
	},
	{
		keywords: []string{"arrest", "bail", "detained", "custody"},
		answer: "On arrest you have the right to know the grounds of arrest, the right to inform a " +
			"relative or friend, and the right to consult a lawyer. The police must produce you " +
			"before a Magistrate within 24 hours. For bailable offences bail is a right; for " +
			"non-bailable offences a court decides. If you cannot afford a lawyer you are entitled to " +
			"free legal aid under Article 39A of the Constitution through the Legal Services " +
			"Authority. Do not sign documents you have not read.",
	},
	{
		keywords: []string{"divorce", "custody", "maintenance", "alimony"},
		answer: "Divorce and custody are governed by the personal law applicable to your marriage " +
			"(Hindu Marriage Act, Special Marriage Act, or others). A petition is filed in the family " +
			"court; mutual-consent divorce requires a joint petition and a cooling-off period, while " +
			"contested divorce requires proving grounds such as cruelty or desertion. Interim " +
			"maintenance can be sought during proceedings, and child custody is decided on the " +
			"welfare of the child. These matters are fact-sensitive, so consult a family lawyer.",
	},
	{
		keywords: []string{"consumer", "refund", "defective", "warranty"},
		answer: "For defective goods or deficient services you may file a complaint under the Consumer " +
			"Protection Act, 2019. Complaints up to Rs. 50 lakh go to the District Commission and can " +
			"be filed online through the e-Daakhil portal. File within two years of the cause of " +
			"action, attach bills and correspondence, and first send a written notice to the seller " +
			"asking for a remedy. Relief can include replacement, refund, and compensation.",
	},
}

const offlineDefault = "I can provide general legal information but your question needs specific " +
	"legal analysis. Please consult a qualified lawyer, or contact your nearest District Legal " +
	"Services Authority, which provides free legal aid to eligible citizens. For urgent police " +
	"matters you can also call the national legal aid helpline 15100."

func (p *OfflineProvider) Advise(_ context.Context, question, _ string) (string, error) {
	q := strings.ToLower(question)
	for _, entry := range knowledgeBase {
		for _, k := range entry.keywords {
			if strings.Contains(q, k) {
				return entry.answer, nil
			}
		}
	}
	return offlineDefault, nil
}
