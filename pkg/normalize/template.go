package normalize

import "github.com/ddbj/jvar/pkg/ledger"

// Template returns an empty workbook with the sheets and column headers of
// a submission of the given kind. Short variants come from VCF files, so
// SNP templates have no Variant Call and Variant Region sheets.
func Template(kind ledger.Kind) *Workbook {
	res := NewWorkbook()
	res.Study = map[string]string{
		colTitle:       "",
		colDescription: "",
		colAssembly:    "",
		colSubmitter:   "",
	}
	res.AddSheet(&Sheet{Name: SampleSetSheet, Columns: []string{
		colSampleSetID, colSampleSetName, colSampleSetSize, colSex,
	}})
	res.AddSheet(&Sheet{Name: SampleSheet, Columns: []string{
		colSampleID, colSampleSetID, colSampleName, colBioSample,
		colSubjectID, colSex, colMaternalID, colPaternalID,
	}})
	res.AddSheet(&Sheet{Name: ExperimentSheet, Columns: []string{
		colExperimentID, colExperimentType, colMethodType, colAnalysisType,
		colMethod, colMerged, colResolution, colReferenceType, colDetectionLimit,
	}})
	res.AddSheet(&Sheet{Name: DatasetSheet, Columns: []string{
		colAssayID, colExperimentID, colSampleSetID, colPlatform,
		colDescription, colVCFFile,
	}})
	if kind != ledger.SV {
		return res
	}

	res.AddSheet(&Sheet{Name: CallSheet, Columns: []string{
		colCallID, colCallType, colAssayID, colExperimentID,
		colSampleSetID, colSampleID, colZygosity, colCopyNumber,
		colAlleleCount, colAlleleNumber, colAlleleFrequency, colAssembly,
		colChrName, colChrAccession, colContigAccession,
		colOuterStart, colStart, colInnerStart,
		colInnerStop, colStop, colOuterStop,
		colFromChr, colFromCoord, colFromStrand,
		colToChr, colToCoord, colToStrand,
		colMutationID, colMutationOrder, colEvidence, colPhenotype,
	}})
	res.AddSheet(&Sheet{Name: RegionSheet, Columns: []string{
		colRegionID, colRegionType, colAssertionMethod, colAssembly,
		colChrName, colChrAccession, colContigAccession,
		colOuterStart, colStart, colInnerStart,
		colInnerStop, colStop, colOuterStop,
		colSupportCalls, colSupportRegions,
	}})
	return res
}
