package domain

// Category is one of the fixed news taxonomy labels.
type Category string

const (
	CategoryResearchFrontier    Category = "研究前沿"
	CategoryIndustryApplication Category = "产业应用"
	CategoryPolicyPlan          Category = "政策计划"
	CategoryOther               Category = "其他"
)

// TargetCategories lists the substantive categories in priority order.
// Only these ever reach the extraction stage; everything else folds into
// CategoryOther and is dropped.
var TargetCategories = []Category{
	CategoryResearchFrontier,
	CategoryIndustryApplication,
	CategoryPolicyPlan,
}

// ArticleInput is one ingested row: the article text plus whatever
// metadata the source file carried.
type ArticleInput struct {
	RawContent        string
	ReleaseTime       *string
	SourceInstitution *string
	URL               *string
}

// ExtractionResult holds the three fields produced by one extraction call.
// Length limits are prompt instructions to the model, not enforced here.
type ExtractionResult struct {
	Title           string
	ShortSummary    string
	DetailedSummary string
}

// IntelligenceRecord is the sink-bound object: category plus extraction
// fields plus carried-through metadata. Constructed once per accepted
// article and written once.
type IntelligenceRecord struct {
	Category          Category `json:"category"`
	Title             string   `json:"title"`
	ShortSummary      string   `json:"short_summary"`
	DetailedSummary   string   `json:"detailed_summary"`
	RawContent        string   `json:"raw_content"`
	ReleaseTime       *string  `json:"release_time"`
	SourceInstitution *string  `json:"source_institution"`
	URL               *string  `json:"url"`
}

// FewShotExample is a fully labeled training instance used by the
// optimizer and, once selected, as an in-context demonstration.
type FewShotExample struct {
	Content         string   `json:"content"`
	Category        Category `json:"category"`
	Title           string   `json:"title"`
	ShortSummary    string   `json:"short_summary"`
	DetailedSummary string   `json:"detailed_summary"`
}
