package xtal

// knownCrystals lists the frequencies, in Hz, of crystals and resonators
// found on real boards. Entries must stay strictly ascending because the
// table is binary searched. Only add parts that were seen on a PCB; a
// frequency counter reading is not a part number.
var knownCrystals = [...]float64{
	// kHz range resonators and watch crystals
	32_768, 38_400, 384_000, 400_000, 430_000, 455_000, 512_000, 600_000,
	640_000, 960_000,

	// 1 MHz to 10 MHz
	1_000_000, 1_008_000, 1_056_000, 1_294_400, 1_689_600, 1_750_000, 1_797_100,
	1_843_200, 2_000_000, 2_012_160, 2_097_152, 2_457_600, 2_500_000, 2_950_000,
	3_000_000, 3_072_000, 3_120_000, 3_521_280, 3_570_000, 3_578_640, 3_579_545,
	3_686_400, 3_840_000, 3_900_000, 4_000_000, 4_028_000, 4_032_000, 4_096_000,
	4_194_304, 4_224_000, 4_410_000, 4_433_610, 4_433_619, 4_608_000, 4_915_200,
	5_000_000, 5_068_800, 5_185_000, 5_460_000, 5_529_600, 5_626_000, 5_670_000,
	5_714_300, 5_911_000, 5_990_400, 6_000_000, 6_144_000, 6_400_000, 6_500_000,
	6_880_000, 6_900_000, 7_000_000, 7_159_090, 7_372_800, 7_864_300, 7_987_000,
	8_000_000, 8_200_000, 8_388_000, 8_448_000, 8_467_200, 8_664_000, 8_700_000,
	8_867_236, 8_867_238, 8_945_000, 9_216_000, 9_828_000, 9_830_400, 9_832_000,
	9_877_680, 9_987_000,

	// 10 MHz to 100 MHz
	10_000_000, 10_137_600, 10_245_000, 10_380_000, 10_500_000, 10_595_000,
	10_644_500, 10_687_500, 10_694_250, 10_717_200, 10_730_000, 10_733_000,
	10_738_635, 10_816_000, 10_920_000, 11_000_000, 11_059_200, 11_200_000,
	11_289_000, 11_400_000, 11_668_800, 11_800_000, 11_980_800, 12_000_000,
	12_057_600, 12_096_000, 12_288_000, 12_324_000, 12_432_000, 12_472_500,
	12_480_000, 12_500_000, 12_672_000, 12_800_000, 12_854_400, 12_936_000,
	12_979_200, 13_300_000, 13_330_560, 13_333_000, 13_400_000, 13_478_400,
	13_495_200, 13_516_800, 13_608_000, 13_824_000, 14_000_000, 14_112_000,
	14_192_640, 14_218_000, 14_300_000, 14_314_000, 14_318_181, 14_705_882,
	14_745_600, 14_784_000, 14_916_000, 14_976_000, 15_000_000, 15_148_800,
	15_288_000, 15_300_720, 15_360_000, 15_400_000, 15_468_480, 15_582_000,
	15_700_000, 15_897_600, 15_920_000, 15_974_400, 16_000_000, 16_097_280,
	16_128_000, 16_384_000, 16_400_000, 16_572_000, 16_588_800, 16_669_800,
	16_670_000, 16_777_216, 16_934_400, 17_064_000, 17_360_000, 17_550_000,
	17_600_000, 17_734_470, 17_734_472, 17_971_200, 18_000_000, 18_432_000,
	18_480_000, 18_575_000, 18_720_000, 18_869_600, 19_339_600, 19_600_000,
	19_602_000, 19_660_800, 19_661_400, 19_923_000, 19_968_000, 20_000_000,
	20_160_000, 20_275_200, 20_625_000, 20_790_000, 21_000_000, 21_052_600,
	21_060_000, 21_254_400, 21_281_370, 21_300_000, 21_477_272, 22_000_000,
	22_032_000, 22_096_000, 22_118_400, 22_321_000, 22_464_000, 22_656_000,
	22_896_000, 23_814_000, 23_961_600, 24_000_000, 24_073_400, 24_576_000,
	24_883_200, 25_000_000, 25_174_800, 25_200_000, 25_398_360, 25_400_000,
	25_447_000, 25_590_906, 25_593_900, 25_771_500, 25_920_000, 26_000_000,
	26_366_000, 26_580_000, 26_601_712, 26_666_000, 26_666_666, 26_686_000,
	26_989_200, 27_000_000, 27_164_000, 27_210_900, 27_562_000, 28_000_000,
	28_322_000, 28_375_160, 28_475_000, 28_480_000, 28_636_363, 28_640_000,
	28_700_000, 29_376_000, 29_491_200, 30_000_000, 30_476_100, 30_800_000,
	31_279_500, 31_684_000, 31_948_800, 32_000_000, 32_147_000, 32_220_000,
	32_317_400, 32_530_400, 33_000_000, 33_264_000, 33_333_000, 33_833_000,
	33_868_800, 34_000_000, 34_291_712, 34_846_000, 35_904_000, 36_000_000,
	37_980_000, 38_769_220, 38_863_630, 39_321_600, 39_710_000, 40_000_000,
	40_210_000, 42_000_000, 42_105_200, 42_954_545, 43_320_000, 44_100_000,
	44_452_800, 45_000_000, 45_158_000, 45_619_200, 45_830_400, 46_615_120,
	47_736_000, 48_000_000, 48_384_000, 48_556_800, 48_654_000, 48_660_000,
	49_152_000, 49_423_500, 50_000_000, 50_113_000, 50_349_000, 51_200_000,
	52_000_000, 52_832_000, 53_203_400, 53_693_175, 54_000_000, 55_000_000,
	57_272_727, 58_000_000, 59_292_000, 60_000_000, 61_440_000, 64_000_000,
	66_666_700, 67_737_600, 68_850_000, 69_551_990, 72_000_000, 72_576_000,
	73_728_000, 80_000_000, 87_183_360,

	// 100 MHz and above
	100_000_000, 101_491_200, 200_000_000,
}
