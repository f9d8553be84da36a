package intent

// defaultVocabulary is never handed out directly; Default returns a deep copy.
var defaultVocabulary = Vocabulary{
	{
		Name: "레짐 분석",
		Keywords: []string{
			"레짐", "regime", "침체", "recession", "경기 국면", "강세장", "약세장",
			"bull market", "bear market", "경기 둔화", "slowdown",
		},
		Agent:      "regime-analyst",
		Skill:      "skills/market-regime",
		OutputPath: "outputs/regime/regime_analysis.md",
	},
	{
		Name: "시그널 분석",
		Keywords: []string{
			"시그널", "signal", "매수 신호", "매도 신호", "컨센서스", "consensus",
			"conviction", "모멘텀", "momentum",
		},
		Agent:      "signal-analyst",
		Skill:      "skills/signal-consensus",
		OutputPath: "outputs/signals/signal_report.md",
	},
	{
		Name: "리스크 평가",
		Keywords: []string{
			"리스크", "risk", "위험", "변동성", "volatility", "낙폭", "drawdown",
			"value at risk", "cvar", "샤프", "sharpe", "vix",
		},
		Agent:      "risk-manager",
		Skill:      "skills/risk-metrics",
		OutputPath: "outputs/risk/risk_assessment.md",
	},
	{
		Name: "섹터 로테이션",
		Keywords: []string{
			"섹터", "sector", "로테이션", "rotation", "업종", "오버웨이트", "언더웨이트",
			"overweight", "underweight",
		},
		Agent:      "sector-strategist",
		OutputPath: "outputs/sectors/sector_rotation.md",
	},
	{
		Name: "포트폴리오 조정",
		Keywords: []string{
			"포트폴리오", "portfolio", "리밸런싱", "rebalanc", "자산배분", "자산 배분",
			"asset allocation", "비중 조절",
		},
		Agent:      "portfolio-manager",
		Skill:      "skills/portfolio-optimizer",
		OutputPath: "outputs/portfolio/allocation_plan.md",
	},
	{
		Name: "거시 지표",
		Keywords: []string{
			"금리", "interest rate", "인플레이션", "inflation", "물가", "cpi", "gdp",
			"실업률", "unemployment", "연준", "fomc", "fred",
		},
		Agent:      "macro-economist",
		Skill:      "skills/fred-data",
		OutputPath: "outputs/macro/macro_snapshot.md",
	},
	{
		Name: "리포트 작성",
		Keywords: []string{
			"리포트", "보고서", "report", "브리핑", "briefing",
		},
		Agent:      "report-writer",
		OutputPath: "outputs/reports/",
	},
}

// Default returns a copy of the built-in vocabulary
func Default() Vocabulary {
	out := make(Vocabulary, len(defaultVocabulary))
	for i, def := range defaultVocabulary {
		def.Keywords = append([]string(nil), def.Keywords...)
		out[i] = def
	}
	return out
}
